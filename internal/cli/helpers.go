package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/existflow/daybook/internal/calendar"
	"github.com/existflow/daybook/internal/model"
	"golang.org/x/term"
)

const dateLayout = "2006-01-02"

// parseDate accepts YYYY-MM-DD, today, tomorrow, yesterday, or a signed
// day offset such as +3 or -1. The result is the start of that day.
func parseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	today := calendar.StartOfDay(now)
	switch strings.ToLower(s) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return calendar.AddDays(today, 1), nil
	case "yesterday":
		return calendar.AddDays(today, -1), nil
	}

	if s[0] == '+' || s[0] == '-' {
		n, err := strconv.Atoi(s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day offset %q", s)
		}
		return calendar.AddDays(today, n), nil
	}

	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD, today, tomorrow or +N)", s)
	}
	return t, nil
}

// shortID returns the first 8 characters of an id
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// matchID resolves a full id or unique prefix against ids
func matchID(prefix string, ids []string) (string, error) {
	var found []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			found = append(found, id)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("not found: %s", prefix)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("ambiguous id %s matches %d records", prefix, len(found))
	}
}

func findTask(a *app, prefix string) (model.Task, error) {
	tasks := a.store.Tasks()
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	id, err := matchID(prefix, ids)
	if err != nil {
		return model.Task{}, fmt.Errorf("task %w", err)
	}
	t, _ := a.store.Task(id)
	return t, nil
}

func findProject(a *app, prefix string) (model.Project, error) {
	projects := a.store.Projects()
	ids := make([]string, len(projects))
	for i, p := range projects {
		if strings.EqualFold(p.Name, prefix) {
			return p, nil
		}
		ids[i] = p.ID
	}
	id, err := matchID(prefix, ids)
	if err != nil {
		return model.Project{}, fmt.Errorf("project %w", err)
	}
	p, _ := a.store.Project(id)
	return p, nil
}

func findRequirement(a *app, prefix string) (model.Requirement, error) {
	reqs := a.store.Requirements()
	ids := make([]string, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ID
	}
	id, err := matchID(prefix, ids)
	if err != nil {
		return model.Requirement{}, fmt.Errorf("requirement %w", err)
	}
	r, _ := a.store.Requirement(id)
	return r, nil
}

func findNote(a *app, prefix string) (model.Note, error) {
	notes := a.store.Notes()
	ids := make([]string, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	id, err := matchID(prefix, ids)
	if err != nil {
		return model.Note{}, fmt.Errorf("note %w", err)
	}
	n, _ := a.store.Note(id)
	return n, nil
}

// confirm asks a yes/no question on the terminal. It returns true without
// asking when --yes was given or confirm_delete is off. Without a terminal
// it refuses rather than guessing.
func confirm(a *app, prompt string) (bool, error) {
	if assumeYes || !a.cfg.ConfirmDelete {
		return true, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("confirmation required, rerun with --yes")
	}

	fmt.Printf("%s [y/N]: ", prompt)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != "yes" {
		fmt.Println("Cancelled.")
		return false, nil
	}
	return true, nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
