package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its ID or ID prefix. Its linked requirement is deleted too.

Examples:
  daybook task delete abc123
  daybook task rm abc123 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	task, err := findTask(a, args[0])
	if err != nil {
		return err
	}

	prompt := fmt.Sprintf("About to delete: \"%s\" (ID: %s)", task.Title, shortID(task.ID))
	if task.RequirementID != nil {
		prompt += " and its requirement"
	}
	ok, err := confirm(a, prompt+". Are you sure?")
	if err != nil || !ok {
		return err
	}

	a.store.DeleteTask(task)
	fmt.Printf("🗑️  Deleted: \"%s\"\n", task.Title)
	return nil
}
