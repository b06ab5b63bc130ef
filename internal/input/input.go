package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/napolitain/solver-wos/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks struct tags on boundary values (selections, ranges,
// requests) and reports every failing field in one error
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("invalid input: %s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Namespace(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Namespace(), fe.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", fe.Namespace(), fe.Param())
	case "required":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Namespace(), fe.Param())
	}
	return fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
}

// ValidateRange checks a level range, reporting failures as ErrInvalidRange
func ValidateRange(r models.LevelRange) error {
	if err := Validate(r); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidRange, err)
	}
	return nil
}

// NormalizeNumber strips whitespace and thousands separators ("1,200" -> "1200")
func NormalizeNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, " ", "")
}

// ParseFloat parses a number that may carry thousands separators
func ParseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(NormalizeNumber(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", models.ErrMalformedNumericInput, s)
	}
	return v, nil
}

// Note records a free-text value that could not be used as given
type Note struct {
	Field string
	Value string
}

func (n Note) String() string {
	return fmt.Sprintf("%s: %q is not a number, using 0", n.Field, n.Value)
}

// Form collects free-text numeric fields, falling back to zero for
// malformed values and remembering which fields were replaced
type Form struct {
	Notes []Note
}

// Float parses a free-text float, or returns 0 and records a note
func (f *Form) Float(field, text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	v, err := ParseFloat(text)
	if err != nil {
		f.Notes = append(f.Notes, Note{Field: field, Value: text})
		return 0
	}
	return v
}

// Int parses a free-text integer, or returns 0 and records a note.
// Values with a fractional part are malformed.
func (f *Form) Int(field, text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	v, err := strconv.Atoi(NormalizeNumber(text))
	if err != nil {
		f.Notes = append(f.Notes, Note{Field: field, Value: text})
		return 0
	}
	return v
}

// Malformed reports whether any field fell back to zero
func (f *Form) Malformed() bool {
	return len(f.Notes) > 0
}

// ParseSelection parses "Name=start:end" (e.g. "Furnace=30:35") into a name
// and a level range. The range itself is not validated.
func ParseSelection(s string) (string, models.LevelRange, error) {
	name, levels, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", models.LevelRange{}, fmt.Errorf("selection %q must look like Name=start:end", s)
	}

	from, to, ok := strings.Cut(levels, ":")
	if !ok {
		return "", models.LevelRange{}, fmt.Errorf("selection %q must look like Name=start:end", s)
	}

	start, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return "", models.LevelRange{}, fmt.Errorf("%w: start level %q", models.ErrMalformedNumericInput, from)
	}
	end, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return "", models.LevelRange{}, fmt.Errorf("%w: end level %q", models.ErrMalformedNumericInput, to)
	}
	return name, models.LevelRange{Start: start, End: end}, nil
}
