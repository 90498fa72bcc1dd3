package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/existflow/daybook/internal/model"
	"github.com/spf13/cobra"
)

var reqCmd = &cobra.Command{
	Use:     "req",
	Aliases: []string{"requirement"},
	Short:   "Manage the requirement board",
}

var reqListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List requirements by status",
	Long: `List requirements grouped by status, newest first.

Examples:
  daybook req list
  daybook req list --status testing`,
	RunE: runReqList,
}

var reqAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a standalone requirement",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runReqAdd,
}

var reqStatusCmd = &cobra.Command{
	Use:   "status [requirement-id] [status]",
	Short: "Move a requirement to another status",
	Long: `Move a requirement to developing, testing, released or deprecated.
Any status may follow any other.`,
	Args: cobra.ExactArgs(2),
	RunE: runReqStatus,
}

var reqDeleteCmd = &cobra.Command{
	Use:     "delete [requirement-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a requirement and its linked task",
	Args:    cobra.ExactArgs(1),
	RunE:    runReqDelete,
}

var reqImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace released and deprecated requirements from a JSON file",
	Long: `Import a JSON document of the form

  {"released": [{"title": "...", "description": "..."}], "deprecated": [...]}

Comments and trailing commas are allowed. Every existing released and
deprecated requirement is replaced; others are kept. Use - for stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runReqImport,
}

var (
	reqStatusFilter string
	reqDescription  string
	reqPriority     string
	reqProject      string
)

func init() {
	reqListCmd.Flags().StringVar(&reqStatusFilter, "status", "", "Only show this status")
	reqAddCmd.Flags().StringVarP(&reqDescription, "description", "D", "", "Description")
	reqAddCmd.Flags().StringVarP(&reqPriority, "priority", "p", string(model.RequirementP2), "Priority (P0-P3)")
	reqAddCmd.Flags().StringVarP(&reqProject, "project", "P", "", "Project name or id")

	reqCmd.AddCommand(reqListCmd)
	reqCmd.AddCommand(reqAddCmd)
	reqCmd.AddCommand(reqStatusCmd)
	reqCmd.AddCommand(reqDeleteCmd)
	reqCmd.AddCommand(reqImportCmd)
}

func runReqList(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	statuses := model.RequirementStatuses
	if reqStatusFilter != "" {
		s, err := model.ParseRequirementStatus(reqStatusFilter)
		if err != nil {
			return err
		}
		statuses = []model.RequirementStatus{s}
	}

	for _, status := range statuses {
		fmt.Printf("\n%s (%d)\n", strings.ToUpper(string(status)), a.store.RequirementsCountForStatus(status))
		fmt.Println(strings.Repeat("─", 60))
		for _, r := range a.store.RequirementsForStatus(status) {
			linked := ""
			if tasks := a.store.TasksForRequirement(r); len(tasks) > 0 {
				linked = "⛓ " + shortID(tasks[0].ID)
			}
			project := ""
			if p, ok := a.store.ProjectForRequirement(r); ok {
				project = p.Name
			}
			fmt.Printf("  %-8s  %s  %-36s  %-10s  %s\n",
				shortID(r.ID), r.Priority, truncate(r.Title, 36), linked, project)
		}
	}
	fmt.Println()
	return nil
}

func runReqAdd(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	r := model.NewRequirement(strings.Join(args, " "), reqDescription)
	r.Priority = model.ParseRequirementPriority(strings.ToUpper(reqPriority))
	if reqProject != "" {
		p, err := findProject(a, reqProject)
		if err != nil {
			return err
		}
		r.ProjectID = &p.ID
	}

	r = a.store.AddRequirement(r)
	fmt.Printf("✓ Added requirement: \"%s\" (%s, id %s)\n", r.Title, r.Priority, shortID(r.ID))
	return nil
}

func runReqStatus(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	r, err := findRequirement(a, args[0])
	if err != nil {
		return err
	}
	status, err := model.ParseRequirementStatus(args[1])
	if err != nil {
		return err
	}
	if err := a.store.SetRequirementStatus(r.ID, status); err != nil {
		return err
	}

	fmt.Printf("→ \"%s\" is now %s\n", r.Title, status)
	return nil
}

func runReqDelete(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	r, err := findRequirement(a, args[0])
	if err != nil {
		return err
	}

	prompt := fmt.Sprintf("About to delete requirement \"%s\"", r.Title)
	if len(a.store.TasksForRequirement(r)) > 0 {
		prompt += " and its linked task"
	}
	ok, err := confirm(a, prompt+". Are you sure?")
	if err != nil || !ok {
		return err
	}

	a.store.DeleteRequirement(r)
	fmt.Printf("🗑️  Deleted requirement: \"%s\"\n", r.Title)
	return nil
}

func runReqImport(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	res, err := a.store.ImportRequirements(data)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Imported %d released, %d deprecated (replaced %d)\n",
		res.Released, res.Deprecated, res.Removed)
	return nil
}
