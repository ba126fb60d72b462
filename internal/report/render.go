// Package report prints an analysis of a selections file to a terminal.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/wellguard/internal/domain/analysis"
	"github.com/okian/wellguard/internal/domain/catalog"
	"github.com/okian/wellguard/internal/domain/model"
	"github.com/okian/wellguard/internal/domain/types"
)

// Waiting is printed instead of an analysis until every field is chosen.
const Waiting = "Waiting for all selections."

const (
	colTimestamp = 11
	colValue     = 20
	colMaterial  = 22
)

// Renderer formats sheets. The zero value is not usable; call New.
type Renderer struct {
	title       lipgloss.Style
	heading     lipgloss.Style
	header      lipgloss.Style
	cell        lipgloss.Style
	placeholder lipgloss.Style
	flagged     lipgloss.Style
	success     lipgloss.Style
	warning     lipgloss.Style
	info        lipgloss.Style
}

// New creates a Renderer with the default palette.
func New() *Renderer {
	return &Renderer{
		title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		heading:     lipgloss.NewStyle().Bold(true).MarginTop(1),
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Bold(true),
		cell:        lipgloss.NewStyle(),
		placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
		flagged:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		info:        lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	}
}

// Render returns the selection table followed by the analysis, or by the
// waiting line when the sheet is not ready.
func (r *Renderer) Render(sheet *model.Sheet) string {
	sections := []string{
		r.title.Render("WellGuard+ | Group 1 Well Completion Analyzer"),
		r.table(sheet),
	}

	rep, ready := analysis.Evaluate(sheet)
	if !ready {
		sections = append(sections, r.heading.Render(Waiting))
		return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
	}

	sections = append(sections,
		r.heading.Render("Integrity Analysis"),
		fmt.Sprintf("Average Pressure: %.2f psi", rep.AvgPressure),
		fmt.Sprintf("Average Temperature: %.2f °C", rep.AvgTemperature),
		r.level(rep.Verdict.Level()).Render(rep.Verdict.Message()),
		r.heading.Render("Material Selection Review"),
	)
	if rep.Materials.Warn() {
		slots := make([]string, 0, len(rep.Materials.Unsuitable))
		for _, s := range rep.Materials.Unsuitable {
			slots = append(slots, s.String())
		}
		sections = append(sections,
			r.warning.Render(rep.Materials.Message()),
			r.info.Render(rep.Materials.Recommendation()),
			r.flagged.Render("Slots: "+strings.Join(slots, ", ")),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (r *Renderer) level(l analysis.Level) lipgloss.Style {
	if l == analysis.LevelWarning {
		return r.warning
	}
	return r.success
}

func (r *Renderer) table(sheet *model.Sheet) string {
	flagged := make(map[types.TimeSlot]bool)
	for _, s := range analysis.ReviewMaterials(sheet).Unsuitable {
		flagged[s] = true
	}

	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top,
		r.header.Width(colTimestamp).Render("Timestamp"),
		r.header.Width(colValue).Render("Pressure"),
		r.header.Width(colValue).Render("Temperature"),
		r.header.Width(colMaterial).Render("Material"),
	)}
	for _, sel := range sheet.Rows() {
		material := r.optional(sel.Material.Present(), materialText(sel), catalog.MaterialPlaceholder, colMaterial)
		if flagged[sel.Slot] {
			material = r.flagged.Width(colMaterial).Render(materialText(sel))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			r.cell.Width(colTimestamp).Render(sel.Slot.String()),
			r.optional(sel.Pressure.Present(), strconv.Itoa(sel.Pressure.OrElse(0)), catalog.ValuePlaceholder, colValue),
			r.optional(sel.Temperature.Present(), strconv.Itoa(sel.Temperature.OrElse(0)), catalog.ValuePlaceholder, colValue),
			material,
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (r *Renderer) optional(present bool, text, placeholder string, width int) string {
	if !present {
		return r.placeholder.Width(width).Render(placeholder)
	}
	return r.cell.Width(width).Render(text)
}

func materialText(sel model.Selection) string {
	m, ok := sel.Material.Get()
	if !ok {
		return ""
	}
	return m.String()
}
