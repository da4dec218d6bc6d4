package domain

import "time"

// ProjectInstance is a concrete, user-owned project derived from a template.
type ProjectInstance struct {
	ID          string     `json:"id"`
	TemplateID  string     `json:"template_id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Instance statuses. CompletedAt is set if and only if the status is
// completed.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// InstanceTask is a task row attached to an instance, with completion state.
type InstanceTask struct {
	ID          string     `json:"id"`
	InstanceID  string     `json:"instance_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	OrderIndex  int        `json:"order_index"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewTask carries data for a task to attach to an instance.
type NewTask struct {
	Title       string
	Description string
	OrderIndex  int
}

// CreateInstanceRequest carries data for starting a new instance.
type CreateInstanceRequest struct {
	TemplateID  string
	UserID      string
	Title       string
	Description string
	Tasks       []NewTask
}
