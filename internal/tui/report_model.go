package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/punchcard/internal/attendance"
	"github.com/balkashynov/punchcard/internal/models"
)

// ReportModel is the interactive month view for one employee.
type ReportModel struct {
	employee models.Employee
	month    string
	days     []attendance.DaySummary

	table  table.Model
	width  int
	height int
}

// NewReportModel builds the month table for the given employee
func NewReportModel(employee models.Employee, month string, days []attendance.DaySummary) ReportModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "First In", Width: 10},
		{Title: "Last Out", Width: 10},
		{Title: "Worked", Width: 9},
	}

	rows := make([]table.Row, 0, len(days))
	for _, day := range days {
		rows = append(rows, table.Row{
			day.Date,
			string(day.Status),
			orDash(day.FirstIn),
			orDash(day.LastOut),
			formatWorked(day.WorkedMinutes),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 20)),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText))
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Background(lipgloss.Color(ColorAccentMain)).
		Bold(false)
	t.SetStyles(styles)

	return ReportModel{
		employee: employee,
		month:    month,
		days:     days,
		table:    t,
	}
}

// Init initializes the model
func (m ReportModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the report
func (m ReportModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true)
	subtitleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText))
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)

	title := titleStyle.Render(fmt.Sprintf("%s — %s", m.employee.Name, m.month))
	subtitle := subtitleStyle.Render(m.summaryLine())
	help := helpStyle.Render("↑/↓ nav · q/esc quit")

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		border.Render(m.table.View()),
		help,
	)
}

// summaryLine counts statuses across the month
func (m ReportModel) summaryLine() string {
	counts := map[attendance.Status]int{}
	worked := 0
	for _, day := range m.days {
		counts[day.Status]++
		worked += day.WorkedMinutes
	}
	return fmt.Sprintf("%d present · %d half-day · %d absent · %d pending · %s total",
		counts[attendance.StatusPresent],
		counts[attendance.StatusHalfDay],
		counts[attendance.StatusAbsent],
		counts[attendance.StatusPending],
		formatWorked(worked),
	)
}

// StatusStyle returns the lipgloss style for an attendance status.
func StatusStyle(status attendance.Status) lipgloss.Style {
	color := ColorPending
	switch status {
	case attendance.StatusPresent:
		color = ColorPresent
	case attendance.StatusHalfDay:
		color = ColorHalfDay
	case attendance.StatusAbsent:
		color = ColorAbsent
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func formatWorked(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
