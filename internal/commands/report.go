package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/punchcard/internal/attendance"
	"github.com/balkashynov/punchcard/internal/config"
	"github.com/balkashynov/punchcard/internal/db"
	"github.com/balkashynov/punchcard/internal/models"
	"github.com/balkashynov/punchcard/internal/tui"
)

var reportCmd = &cobra.Command{
	Use:   "report <employee-id>",
	Short: "Show a monthly attendance report",
	Long: `Derive per-day attendance for one employee over a month: status,
first in, last out, and worked time.

Examples:
  punchcard report 1042                   # current month, interactive UI
  punchcard report 1042 --month 2026-07
  punchcard report 1042 --no-ui`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, err := db.Open(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		emp, err := store.GetEmployee(args[0])
		if err != nil {
			return err
		}

		month, _ := cmd.Flags().GetString("month")
		if month == "" {
			month = time.Now().Format("2006-01")
		}

		from, to, err := attendance.MonthRange(month)
		if err != nil {
			return err
		}
		byDate, err := store.PunchTimesByDate(emp.ID, from, to)
		if err != nil {
			return err
		}
		days, err := attendance.MonthSummaries(month, byDate, time.Now())
		if err != nil {
			return err
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			printReport(*emp, month, days)
			return nil
		}
		return tui.RunReportTUI(*emp, month, days)
	},
}

func printReport(emp models.Employee, month string, days []attendance.DaySummary) {
	fmt.Printf("%s — %s\n", emp.Name, month)
	for _, day := range days {
		status := tui.StatusStyle(day.Status).Render(string(day.Status))
		if day.FirstIn == "" {
			fmt.Printf("  %s  %s\n", day.Date, status)
			continue
		}
		fmt.Printf("  %s  %-18s %s → %s  (%dh %dm)\n",
			day.Date, status, day.FirstIn, day.LastOut,
			day.WorkedMinutes/60, day.WorkedMinutes%60)
	}
}

func init() {
	reportCmd.Flags().StringP("month", "m", "", "Month to report on (YYYY-MM, default current)")
	reportCmd.Flags().Bool("no-ui", false, "Plain text output instead of the interactive view")
}
