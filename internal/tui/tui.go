package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/punchcard/internal/attendance"
	"github.com/balkashynov/punchcard/internal/models"
)

// RunReportTUI starts the interactive month report
func RunReportTUI(employee models.Employee, month string, days []attendance.DaySummary) error {
	model := NewReportModel(employee, month, days)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
