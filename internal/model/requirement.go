package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RequirementStatus is the lifecycle stage of a requirement. Any status may
// be assigned from any other.
type RequirementStatus string

const (
	RequirementDeveloping RequirementStatus = "developing"
	RequirementTesting    RequirementStatus = "testing"
	RequirementReleased   RequirementStatus = "released"
	RequirementDeprecated RequirementStatus = "deprecated"
)

// RequirementStatuses lists every status in board order
var RequirementStatuses = []RequirementStatus{
	RequirementDeveloping,
	RequirementTesting,
	RequirementReleased,
	RequirementDeprecated,
}

// ParseRequirementStatus validates s against the allowed statuses
func ParseRequirementStatus(s string) (RequirementStatus, error) {
	for _, st := range RequirementStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown requirement status %q", s)
}

// RequirementPriority ranks requirements from P0 (most urgent) to P3
type RequirementPriority string

const (
	RequirementP0 RequirementPriority = "P0"
	RequirementP1 RequirementPriority = "P1"
	RequirementP2 RequirementPriority = "P2"
	RequirementP3 RequirementPriority = "P3"
)

// ParseRequirementPriority converts a stored string, falling back to P2
func ParseRequirementPriority(s string) RequirementPriority {
	switch RequirementPriority(s) {
	case RequirementP0, RequirementP1, RequirementP2, RequirementP3:
		return RequirementPriority(s)
	default:
		return RequirementP2
	}
}

// Requirement is a lightweight work item tracked independently of task status.
// RelatedTaskIDs is filled at creation and not kept in sync afterwards.
type Requirement struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Status         RequirementStatus   `json:"status"`
	Priority       RequirementPriority `json:"priority"`
	ProjectID      *string             `json:"project_id,omitempty"`
	RelatedTaskIDs []string            `json:"related_task_ids"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// NewRequirement creates a developing P2 requirement with a fresh identity
func NewRequirement(title, description string) Requirement {
	now := time.Now()
	return Requirement{
		ID:             uuid.New().String(),
		Title:          title,
		Description:    description,
		Status:         RequirementDeveloping,
		Priority:       RequirementP2,
		RelatedTaskIDs: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// InProject reports whether the requirement belongs to projectID
func (r *Requirement) InProject(projectID string) bool {
	return r.ProjectID != nil && *r.ProjectID == projectID
}
