package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/punchcard/internal/config"
	"github.com/balkashynov/punchcard/internal/db"
)

var employeesCmd = &cobra.Command{
	Use:   "employees [employee-id]",
	Short: "List employees or rename one",
	Long: `List every employee seen in the export data.

With an employee id and --rename, set a new display name. A rename sticks:
export data never overwrites it.

Examples:
  punchcard employees
  punchcard employees 1042 --rename "Jane Smith"`,
	Args: cobra.MaximumNArgs(1),
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

		newName, _ := cmd.Flags().GetString("rename")
		if newName != "" {
			if len(args) == 0 {
				return fmt.Errorf("--rename requires an employee id")
			}
			if err := store.RenameEmployee(args[0], newName); err != nil {
				return err
			}
			fmt.Printf("✓ Employee %s renamed to %q\n", args[0], newName)
			return nil
		}

		if len(args) == 1 {
			emp, err := store.GetEmployee(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s\n", emp.ID, emp.Name)
			return nil
		}

		employees, err := store.ListEmployees()
		if err != nil {
			return err
		}
		if len(employees) == 0 {
			fmt.Println("No employees yet — run 'punchcard ingest' first")
			return nil
		}
		for _, emp := range employees {
			fmt.Printf("%s  %s\n", emp.ID, emp.Name)
		}
		return nil
	},
}

func init() {
	employeesCmd.Flags().StringP("rename", "r", "", "New display name for the given employee id")
}
