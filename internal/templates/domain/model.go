package domain

import "time"

// ProjectTemplate is a reusable project blueprint.
type ProjectTemplate struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Difficulty     string    `json:"difficulty"`
	EstimatedHours int       `json:"estimated_hours"`
	Category       string    `json:"category"`
	Visibility     string    `json:"visibility"`
	Status         string    `json:"status"`
	CreatedBy      string    `json:"created_by"`
	Version        int       `json:"version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Difficulty levels
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Visibility values
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Template statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Estimated hours bounds
const (
	MinEstimatedHours = 1
	MaxEstimatedHours = 48
)

// Categories is the fixed set a template may belong to.
var Categories = []string{
	"appliances",
	"electrical",
	"floors",
	"general",
	"home-safety",
	"kitchen",
	"outdoor",
	"painting",
	"plumbing",
	"stairs",
	"storage",
	"windows-and-doors",
}

func ValidDifficulty(d string) bool {
	return d == DifficultyBeginner || d == DifficultyIntermediate || d == DifficultyAdvanced
}

func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

func ValidEstimatedHours(h int) bool {
	return h >= MinEstimatedHours && h <= MaxEstimatedHours
}

func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

// CreateTemplateRequest carries data for a new template.
type CreateTemplateRequest struct {
	Name           string
	Description    string
	Difficulty     string
	EstimatedHours int
	Category       string
	Visibility     string
	Status         string
	CreatedBy      string
}

// ListFilter narrows template listings.
type ListFilter struct {
	Category   string
	Difficulty string
	Query      string
}
