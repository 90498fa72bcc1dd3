package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage project context",
	Long: `Set or view the current project context.

When a context is set, new tasks are added to that project by default.

Examples:
  daybook context              # Show current context
  daybook context ls           # List all projects
  daybook context set work     # Set context to 'work' project
  daybook context clear        # Clear context (no project)`,
	RunE: runContextShow,
}

var contextLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List all projects",
	RunE:    runContextList,
}

var contextSetCmd = &cobra.Command{
	Use:   "set [project]",
	Short: "Set the current project context",
	Args:  cobra.ExactArgs(1),
	RunE:  runContextSet,
}

var contextClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the current context",
	RunE:  runContextClear,
}

func init() {
	contextCmd.AddCommand(contextLsCmd)
	contextCmd.AddCommand(contextSetCmd)
	contextCmd.AddCommand(contextClearCmd)
}

// Context file path
func contextFilePath(a *app) string {
	return filepath.Join(a.cfg.DataDir, "context")
}

// currentContext returns the current project id (empty means none)
func currentContext(a *app) string {
	data, err := os.ReadFile(contextFilePath(a))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func runContextShow(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	id := currentContext(a)
	if id == "" {
		fmt.Println("📥 Current context: none")
		return nil
	}

	project, ok := a.store.Project(id)
	if !ok {
		fmt.Printf("⚠️  Context set to '%s' but project not found\n", id)
		return nil
	}
	fmt.Printf("📁 Current context: %s (%d tasks)\n", project.Name, len(a.store.TasksForProject(id)))
	return nil
}

func runContextList(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	current := currentContext(a)

	fmt.Println()
	for _, p := range a.store.Projects() {
		marker := "  "
		if p.ID == current {
			marker = "❯ "
		}
		fmt.Printf("%s%-8s  %-20s  %d\n", marker, shortID(p.ID), p.Name, len(a.store.TasksForProject(p.ID)))
	}
	fmt.Println()
	fmt.Println("Use 'daybook context set <project>' to switch context")
	return nil
}

func runContextSet(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	project, err := findProject(a, args[0])
	if err != nil {
		return err
	}
	if err := os.WriteFile(contextFilePath(a), []byte(project.ID), 0644); err != nil {
		return fmt.Errorf("failed to set context: %w", err)
	}

	fmt.Printf("📁 Switched to: %s\n", project.Name)
	return nil
}

func runContextClear(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	if err := os.Remove(contextFilePath(a)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear context: %w", err)
	}
	fmt.Println("📥 Context cleared")
	return nil
}
