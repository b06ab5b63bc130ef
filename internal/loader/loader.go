package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/napolitain/solver-wos/internal/input"
	"github.com/napolitain/solver-wos/internal/models"
)

// Column names with a fixed meaning; every other column is a resource
const (
	levelColumn = "level"
	timeColumn  = "time"
)

// LoadTable loads a per-level table from a .csv or .json file.
// A missing file is reported as models.ErrMissingReferenceData.
func LoadTable(path string) (*models.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", models.ErrMissingReferenceData, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var rows []models.CostTimeRow
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		rows, err = parseJSON(data)
	default:
		rows, err = ParseCSV(strings.NewReader(string(data)))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	return newTable(name, rows)
}

// ParseCSV reads rows with a header line. Header names are case-insensitive,
// numbers may carry thousands separators and empty cells count as zero.
func ParseCSV(r io.Reader) ([]models.CostTimeRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("missing header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	levelIdx := -1
	for i, h := range header {
		if h == levelColumn {
			levelIdx = i
		}
	}
	if levelIdx < 0 {
		return nil, fmt.Errorf("no %q column in header %v", levelColumn, header)
	}

	var rows []models.CostTimeRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		level, err := strconv.Atoi(input.NormalizeNumber(record[levelIdx]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad level %q", line, record[levelIdx])
		}

		row := models.CostTimeRow{Level: level, Resources: make(models.Resources)}
		for i, cell := range record {
			if i == levelIdx || i >= len(header) || strings.TrimSpace(cell) == "" {
				continue
			}
			v, err := input.ParseFloat(cell)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %s: %w", line, header[i], err)
			}
			if v < 0 {
				return nil, fmt.Errorf("line %d, column %s: negative value %v", line, header[i], v)
			}
			if header[i] == timeColumn {
				row.TimeSeconds = v
				continue
			}
			row.Resources[models.ResourceType(header[i])] = v
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// parseJSON reads an array of row objects such as
// [{"level": 31, "meat": 1200, "firecrystals": 15, "time": 3600}]
func parseJSON(data []byte) ([]models.CostTimeRow, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, errors.New("expected an array of rows")
	}

	var rows []models.CostTimeRow
	var parseErr error
	doc.ForEach(func(_, obj gjson.Result) bool {
		row, err := parseJSONRow(obj)
		if err != nil {
			parseErr = err
			return false
		}
		rows = append(rows, row)
		return true
	})

	return rows, parseErr
}

// parseJSONRow reads one row object. Keys are case-insensitive like CSV
// headers; cells must be numbers or numeric strings.
func parseJSONRow(obj gjson.Result) (models.CostTimeRow, error) {
	if !obj.IsObject() {
		return models.CostTimeRow{}, fmt.Errorf("row %s is not an object", obj.Raw)
	}

	cells := make(map[string]float64)
	var order []string
	var cellErr error
	obj.ForEach(func(key, value gjson.Result) bool {
		name := strings.ToLower(strings.TrimSpace(key.String()))
		v, err := jsonNumber(value)
		if err != nil {
			cellErr = fmt.Errorf("row %s, %s: %w", obj.Raw, name, err)
			return false
		}
		if _, dup := cells[name]; dup {
			cellErr = fmt.Errorf("row %s repeats column %s", obj.Raw, name)
			return false
		}
		cells[name] = v
		order = append(order, name)
		return true
	})
	if cellErr != nil {
		return models.CostTimeRow{}, cellErr
	}

	level, ok := cells[levelColumn]
	if !ok {
		return models.CostTimeRow{}, fmt.Errorf("row %s has no level", obj.Raw)
	}
	if level != math.Trunc(level) {
		return models.CostTimeRow{}, fmt.Errorf("row %s: bad level %v", obj.Raw, level)
	}

	row := models.CostTimeRow{Level: int(level), Resources: make(models.Resources)}
	for _, name := range order {
		v := cells[name]
		switch {
		case name == levelColumn:
			continue
		case v < 0:
			return models.CostTimeRow{}, fmt.Errorf("level %d, %s: negative value %v", row.Level, name, v)
		case name == timeColumn:
			row.TimeSeconds = v
		default:
			row.Resources[models.ResourceType(name)] = v
		}
	}
	return row, nil
}

func jsonNumber(value gjson.Result) (float64, error) {
	switch value.Type {
	case gjson.Number:
		return value.Float(), nil
	case gjson.String:
		return input.ParseFloat(value.String())
	}
	return 0, fmt.Errorf("%w: %s", models.ErrMalformedNumericInput, value.Raw)
}

func newTable(name string, rows []models.CostTimeRow) (*models.Table, error) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].Level < rows[j].Level })
	for i := 1; i < len(rows); i++ {
		if rows[i].Level == rows[i-1].Level {
			return nil, fmt.Errorf("duplicate level %d in %s", rows[i].Level, name)
		}
	}
	return &models.Table{Name: name, Rows: rows}, nil
}
