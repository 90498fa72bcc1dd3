package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/existflow/daybook/internal/logger"
	"github.com/existflow/daybook/internal/model"
	"github.com/tidwall/jsonc"
)

// ErrInvalidImport is returned when an import document cannot be parsed.
var ErrInvalidImport = errors.New("invalid import document")

type importItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type importDocument struct {
	Released   []importItem `json:"released"`
	Deprecated []importItem `json:"deprecated"`
}

// ImportResult summarizes an import
type ImportResult struct {
	Removed    int
	Released   int
	Deprecated int
}

// ImportRequirements replaces every released and deprecated requirement
// with the lists in data. data is JSON, optionally with comments and
// trailing commas. Nothing changes when data cannot be parsed.
func (s *Store) ImportRequirements(data []byte) (ImportResult, error) {
	var res ImportResult

	raw := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(raw) == 0 || raw[0] != '{' {
		return res, fmt.Errorf("%w: expected an object", ErrInvalidImport)
	}
	var doc importDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return res, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	s.mu.Lock()
	defer s.unlock()

	var stale []string
	for _, r := range s.requirements {
		if r.Status == model.RequirementReleased || r.Status == model.RequirementDeprecated {
			stale = append(stale, r.ID)
		}
	}
	for _, id := range stale {
		s.deleteRequirement(id)
	}
	res.Removed = len(stale)

	base := s.now()
	var added []model.Requirement
	add := func(items []importItem, status model.RequirementStatus) int {
		for i, item := range items {
			createdAt := base.Add(time.Duration(i) * time.Second)
			added = append(added, model.Requirement{
				ID:             s.newID(),
				Title:          item.Title,
				Description:    item.Description,
				Status:         status,
				Priority:       inferPriority(item.Title),
				RelatedTaskIDs: []string{},
				CreatedAt:      createdAt,
				UpdatedAt:      createdAt,
			})
		}
		return len(items)
	}
	res.Released = add(doc.Released, model.RequirementReleased)
	res.Deprecated = add(doc.Deprecated, model.RequirementDeprecated)

	s.requirements = append(s.requirements, added...)
	s.check("save requirements", s.gw.SaveRequirements(s.ctx, added))
	for _, r := range added {
		s.emit(EntityRequirement, OpCreate, r.ID)
	}

	s.log.Info("Requirements imported",
		logger.F("removed", res.Removed),
		logger.F("released", res.Released),
		logger.F("deprecated", res.Deprecated))
	return res, nil
}

// inferPriority reads a priority hint from a requirement title
func inferPriority(title string) model.RequirementPriority {
	switch {
	case strings.Contains(title, "P0"):
		return model.RequirementP0
	case strings.Contains(title, "BUG"), strings.Contains(title, "bug"), strings.Contains(title, "fix"):
		return model.RequirementP1
	default:
		return model.RequirementP2
	}
}
