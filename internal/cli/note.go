package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/existflow/daybook/internal/model"
	"github.com/existflow/daybook/internal/richtext"
	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

var noteNewCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a note",
	Long: `Create a note. The body is Markdown, read from --body, --file or stdin (-).
Images can be attached with --image; each one is stored and referenced
at the end of the note.

Examples:
  daybook note new "Standup" --body "- shipped **export**"
  daybook note new "Design" --file design.md --image sketch.png`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNoteNew,
}

var noteListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes, pinned first",
	RunE:    runNoteList,
}

var notePinCmd = &cobra.Command{
	Use:   "pin [note-id]",
	Short: "Pin or unpin a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotePin,
}

var noteDeleteCmd = &cobra.Command{
	Use:     "delete [note-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a note and its images",
	Args:    cobra.ExactArgs(1),
	RunE:    runNoteDelete,
}

var noteSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search note titles and text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNoteSearch,
}

var noteGCCmd = &cobra.Command{
	Use:   "gc",
	Short: "Remove stored images no note references",
	RunE:  runNoteGC,
}

var (
	noteBody   string
	noteFile   string
	noteImages []string
)

func init() {
	noteNewCmd.Flags().StringVarP(&noteBody, "body", "b", "", "Markdown body")
	noteNewCmd.Flags().StringVarP(&noteFile, "file", "f", "", "Read the body from a file (- for stdin)")
	noteNewCmd.Flags().StringSliceVarP(&noteImages, "image", "i", nil, "Image file to attach (repeatable)")

	noteCmd.AddCommand(noteNewCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(notePinCmd)
	noteCmd.AddCommand(noteDeleteCmd)
	noteCmd.AddCommand(noteSearchCmd)
	noteCmd.AddCommand(noteGCCmd)
}

func runNoteNew(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	title := ""
	if len(args) == 1 {
		title = args[0]
	}
	n := model.NewNote(title)

	body := noteBody
	switch noteFile {
	case "":
	case "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		body = string(data)
	default:
		data, err := os.ReadFile(noteFile)
		if err != nil {
			return fmt.Errorf("failed to read note file: %w", err)
		}
		body = string(data)
	}

	var b strings.Builder
	b.WriteString(body)
	for _, path := range noteImages {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		ref, err := a.files.Save(data)
		if err != nil {
			return err
		}
		n.Attachments = append(n.Attachments, ref)
		fmt.Fprintf(&b, "\n\n![%s](%s)", imageAlt(path), ref.Filename)
	}
	n.Markup = b.String()

	n = a.store.AddNote(n)
	fmt.Printf("✓ Created note: %s (id %s)\n", n.DisplayTitle(), shortID(n.ID))
	return nil
}

// imageAlt is the file name without directory or extension
func imageAlt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func printNotes(notes []model.Note) {
	if len(notes) == 0 {
		fmt.Println("No notes found.")
		return
	}
	fmt.Println()
	for _, n := range notes {
		pin := "  "
		if n.IsPinned {
			pin = "📌"
		}
		fmt.Printf("%s %-8s  %-30s  %s\n", pin, shortID(n.ID), n.DisplayTitle(), n.UpdatedAt.Format("2006-01-02 15:04"))
		if p := n.Preview(); p != "" {
			fmt.Printf("   %s\n", strings.ReplaceAll(p, "\n", " "))
		}
	}
	fmt.Println()
}

func runNoteList(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	printNotes(a.store.SortedNotes(""))
	return nil
}

func runNotePin(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	n, err := findNote(a, args[0])
	if err != nil {
		return err
	}
	a.store.ToggleNotePin(n)

	if n.IsPinned {
		fmt.Printf("Unpinned: %s\n", n.DisplayTitle())
	} else {
		fmt.Printf("📌 Pinned: %s\n", n.DisplayTitle())
	}
	return nil
}

func runNoteDelete(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	n, err := findNote(a, args[0])
	if err != nil {
		return err
	}

	files := richtext.ReferencedFiles(n)
	prompt := fmt.Sprintf("About to delete note \"%s\"", n.DisplayTitle())
	if len(files) > 0 {
		prompt += fmt.Sprintf(" and %d image(s)", len(files))
	}
	ok, err := confirm(a, prompt+". Are you sure?")
	if err != nil || !ok {
		return err
	}

	a.store.DeleteNote(n)
	fmt.Printf("🗑️  Deleted note: %s\n", n.DisplayTitle())
	return nil
}

func runNoteSearch(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	printNotes(a.store.SearchNotes(strings.Join(args, " ")))
	return nil
}

func runNoteGC(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	removed, err := a.store.CleanOrphanAttachments()
	if err != nil {
		return fmt.Errorf("failed to clean attachments: %w", err)
	}
	for _, name := range removed {
		fmt.Printf("🗑️  %s\n", name)
	}
	fmt.Printf("Removed %d orphan image(s)\n", len(removed))
	return nil
}
