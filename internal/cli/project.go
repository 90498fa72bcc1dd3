package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/daybook/internal/model"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  `Create, list, and delete projects for organizing tasks.`,
}

var projectNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new project",
	Long: `Create a new project for organizing tasks.

Examples:
  daybook project new "Work"
  daybook project new "Personal" --color "#FF6B6B"`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectNew,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all projects",
	RunE:    runProjectList,
}

var projectEditCmd = &cobra.Command{
	Use:   "edit [project]",
	Short: "Rename or recolor a project",
	Long: `Change a project's name or color.

Examples:
  daybook project edit Work --name "Day job"
  daybook project edit 3f2a --color "#4ECDC4"`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectEdit,
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete [project]",
	Aliases: []string{"rm"},
	Short:   "Delete a project and all of its tasks",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectDelete,
}

var (
	projectColor string
	projectName  string
)

func init() {
	projectNewCmd.Flags().StringVarP(&projectColor, "color", "c", "", "Project color (hex, defaults to the next palette color)")
	projectEditCmd.Flags().StringVarP(&projectName, "name", "n", "", "New project name")
	projectEditCmd.Flags().StringVarP(&projectColor, "color", "c", "", "New project color (hex)")

	projectCmd.AddCommand(projectNewCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectEditCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func runProjectNew(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	color := projectColor
	if color == "" {
		n := len(a.store.Projects())
		color = model.DefaultProjectColors[n%len(model.DefaultProjectColors)]
	}

	p := a.store.AddProject(model.NewProject(args[0], color))
	fmt.Printf("✓ Created project: %s (id: %s)\n", p.Name, shortID(p.ID))
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	projects := a.store.Projects()

	fmt.Println()
	fmt.Printf("  %-8s  %-20s  %-8s  %s\n", "ID", "Name", "Color", "Tasks")
	fmt.Println(strings.Repeat("─", 50))

	totalPending := 0
	for _, p := range projects {
		tasks := a.store.TasksForProject(p.ID)
		pending := 0
		for _, t := range tasks {
			if t.Status != model.StatusCompleted {
				pending++
			}
		}
		totalPending += pending
		fmt.Printf("  %-8s  %-20s  %-8s  %d/%d\n", shortID(p.ID), p.Name, p.ColorHex, pending, len(tasks))
	}

	fmt.Println(strings.Repeat("─", 50))
	fmt.Printf("  %d projects, %d pending tasks\n\n", len(projects), totalPending)
	return nil
}

func runProjectEdit(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	project, err := findProject(a, args[0])
	if err != nil {
		return err
	}

	changed := false
	if cmd.Flags().Changed("name") {
		name := strings.TrimSpace(projectName)
		if name == "" {
			return fmt.Errorf("project name cannot be empty")
		}
		project.Name = name
		changed = true
	}
	if cmd.Flags().Changed("color") {
		project.ColorHex = projectColor
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to change, use --name or --color")
	}

	a.store.UpdateProject(project)
	fmt.Printf("✓ Updated project: %s (%s)\n", project.Name, project.ColorHex)
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	project, err := findProject(a, args[0])
	if err != nil {
		return err
	}

	n := len(a.store.TasksForProject(project.ID))
	ok, err := confirm(a, fmt.Sprintf("Delete project %s and its %d task(s)?", project.Name, n))
	if err != nil || !ok {
		return err
	}

	a.store.DeleteProject(project)
	fmt.Printf("🗑️  Deleted project: %s\n", project.Name)
	return nil
}
