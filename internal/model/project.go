package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultProjectName  = "默认项目"
	DefaultProjectColor = "#5B8DEF"
)

// DefaultProjectColors is the palette offered when creating a project
var DefaultProjectColors = []string{
	"#5B8DEF", // blue
	"#7C5BEF", // purple
	"#EF5B5B", // red
	"#EF8F5B", // orange
	"#5BEF8F", // green
	"#5BCEEF", // cyan
	"#EF5BB8", // pink
	"#8F8F8F", // gray
}

// Project groups tasks and requirements
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ColorHex  string    `json:"color_hex"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProject creates a project with a fresh identity
func NewProject(name, colorHex string) Project {
	if colorHex == "" {
		colorHex = DefaultProjectColor
	}
	return Project{
		ID:        uuid.New().String(),
		Name:      name,
		ColorHex:  colorHex,
		CreatedAt: time.Now(),
	}
}

// DefaultProject returns the project created when none exist
func DefaultProject() Project {
	return NewProject(DefaultProjectName, DefaultProjectColor)
}
