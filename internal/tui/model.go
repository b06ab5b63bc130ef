// Package tui implements the interactive building upgrade form.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/napolitain/solver-wos/internal/calculator"
	"github.com/napolitain/solver-wos/internal/format"
	"github.com/napolitain/solver-wos/internal/input"
	"github.com/napolitain/solver-wos/internal/models"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	focusStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	labelStyle  = lipgloss.NewStyle().Width(22)
	resultStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginTop(1)
	totalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	helpStyle   = lipgloss.NewStyle().Faint(true).MarginTop(1)
)

type fieldKind int

const (
	textField fieldKind = iota
	toggleField
)

// Field identifies one input of the form
type Field int

const (
	BaseCost Field = iota
	Multiplier
	TimePerLevel
	FromLevel
	ToLevel
	BaseSpeed
	SkillLevel
	PetLevel
	President
	VicePresident
	DoubleTime
)

type field struct {
	label string
	kind  fieldKind
	value string
	on    bool
}

// Model is the bubbletea model of the upgrade form. Every edit recomputes
// the result; malformed numbers count as zero and are listed as notes.
type Model struct {
	calc   *calculator.Calculator
	fields []field
	focus  int

	result *calculator.UpgradeResult
	err    error
	notes  []input.Note
}

// New creates the form with a sample upgrade already filled in
func New(calc *calculator.Calculator) Model {
	m := Model{
		calc: calc,
		fields: []field{
			BaseCost:      {label: "Base cost", value: "100"},
			Multiplier:    {label: "Cost multiplier/level", value: "1.15"},
			TimePerLevel:  {label: "Time per level (s)", value: "300"},
			FromLevel:     {label: "From level", value: "1"},
			ToLevel:       {label: "To level", value: "10"},
			BaseSpeed:     {label: "Base speed %", value: "0"},
			SkillLevel:    {label: "Skill level (0-5)", value: "0"},
			PetLevel:      {label: "Pet level (0-5)", value: "0"},
			President:     {label: "President", kind: toggleField},
			VicePresident: {label: "Vice President", kind: toggleField},
			DoubleTime:    {label: "Double time", kind: toggleField},
		},
	}
	m.recompute()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	f := &m.fields[m.focus]
	switch key.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down", "enter":
		m.focus = (m.focus + 1) % len(m.fields)
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
		return m, nil
	case "backspace":
		if f.kind == textField && f.value != "" {
			runes := []rune(f.value)
			f.value = string(runes[:len(runes)-1])
		}
	case " ":
		if f.kind == toggleField {
			f.on = !f.on
		}
	default:
		if f.kind != textField || key.Type != tea.KeyRunes {
			return m, nil
		}
		f.value += string(key.Runes)
	}

	m.recompute()
	return m, nil
}

func (m *Model) recompute() {
	var form input.Form
	text := func(f Field) string { return m.fields[f].value }

	req := calculator.UpgradeRequest{
		BaseCost:               form.Float(m.fields[BaseCost].label, text(BaseCost)),
		CostMultiplierPerLevel: form.Float(m.fields[Multiplier].label, text(Multiplier)),
		TimePerLevelSeconds:    form.Float(m.fields[TimePerLevel].label, text(TimePerLevel)),
		Range: models.LevelRange{
			Start: form.Int(m.fields[FromLevel].label, text(FromLevel)),
			End:   form.Int(m.fields[ToLevel].label, text(ToLevel)),
		},
		Bonus: models.BonusSelection{
			BaseSpeedPercent: form.Float(m.fields[BaseSpeed].label, text(BaseSpeed)),
			SkillLevel:       form.Int(m.fields[SkillLevel].label, text(SkillLevel)),
			PetLevel:         form.Int(m.fields[PetLevel].label, text(PetLevel)),
			President:        m.fields[President].on,
			VicePresident:    m.fields[VicePresident].on,
			DoubleTime:       m.fields[DoubleTime].on,
		},
	}

	m.notes = form.Notes
	m.result, m.err = m.calc.Upgrade(req)
}

// Result returns the latest successful computation, or nil
func (m Model) Result() *calculator.UpgradeResult {
	if m.err != nil {
		return nil
	}
	return m.result
}

// Err returns why the latest input could not be computed
func (m Model) Err() error {
	return m.err
}

// Focused returns the field that receives key presses
func (m Model) Focused() Field {
	return Field(m.focus)
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Whiteout Survival · Upgrade Calculator"))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		cursor := "  "
		label := labelStyle.Render(f.label)
		if i == m.focus {
			cursor = focusStyle.Render("> ")
			label = focusStyle.Inherit(labelStyle).Render(f.label)
		}

		value := f.value
		if f.kind == toggleField {
			value = "[ ]"
			if f.on {
				value = "[x]"
			}
		}
		b.WriteString(cursor + label + value + "\n")
	}

	b.WriteString(resultStyle.Render(m.resultView()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/↓ next · shift+tab/↑ previous · space toggle · esc quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) resultView() string {
	var lines []string

	if m.err != nil {
		lines = append(lines, errorStyle.Render(m.err.Error()))
	} else {
		r := m.result
		lines = append(lines,
			totalStyle.Render(fmt.Sprintf("Total cost: %s", format.Number(r.TotalCost()))),
			totalStyle.Render(fmt.Sprintf("Total time: %s", r.Duration)),
			fmt.Sprintf("Speed +%s · cost x%.2f · %d levels",
				format.Percent(r.Bonus.SpeedPercent), r.Bonus.CostMultiplier, r.Raw.Levels),
		)
	}

	for _, n := range m.notes {
		lines = append(lines, noteStyle.Render(n.String()))
	}
	return strings.Join(lines, "\n")
}
