package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hearthplan/diy-backend/internal/instances/domain"
)

// InstanceRepository provides persistence operations for project instances
// and their tasks.
type InstanceRepository struct {
	db *pgxpool.Pool
}

func NewInstanceRepository(db *pgxpool.Pool) *InstanceRepository {
	return &InstanceRepository{db: db}
}

const instanceColumns = `id, template_id, user_id, title, coalesce(description, ''), status, started_at, completed_at, created_at, updated_at`

func scanInstance(row pgx.Row) (*domain.ProjectInstance, error) {
	var p domain.ProjectInstance
	err := row.Scan(
		&p.ID, &p.TemplateID, &p.UserID, &p.Title, &p.Description,
		&p.Status, &p.StartedAt, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts an active instance for the given template and user.
func (r *InstanceRepository) Create(ctx context.Context, req domain.CreateInstanceRequest) (*domain.ProjectInstance, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title required")
	}
	if req.UserID == "" {
		return nil, fmt.Errorf("user id required")
	}

	const q = `
insert into project_instances (template_id, user_id, title, description, status, started_at)
values ($1::uuid, $2, $3, $4, 'active', now())
returning ` + instanceColumns + `;
`
	p, err := scanInstance(r.db.QueryRow(ctx, q, req.TemplateID, req.UserID, req.Title, req.Description))
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	return p, nil
}

// GetByID fetches an instance owned by the given user.
func (r *InstanceRepository) GetByID(ctx context.Context, userID, id string) (*domain.ProjectInstance, error) {
	const q = `
select ` + instanceColumns + `
from project_instances
where id = $1::uuid and user_id = $2;
`
	p, err := scanInstance(r.db.QueryRow(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListByUser returns a user's instances, optionally filtered by status.
func (r *InstanceRepository) ListByUser(ctx context.Context, userID, status string) ([]domain.ProjectInstance, error) {
	const q = `
select ` + instanceColumns + `
from project_instances
where user_id = $1
  and ($2 = '' or status = $2)
order by started_at desc;
`
	rows, err := r.db.Query(ctx, q, userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ProjectInstance, 0, 16)
	for rows.Next() {
		var p domain.ProjectInstance
		if err := rows.Scan(
			&p.ID, &p.TemplateID, &p.UserID, &p.Title, &p.Description,
			&p.Status, &p.StartedAt, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Complete marks an active instance as completed, stamping completed_at.
func (r *InstanceRepository) Complete(ctx context.Context, userID, id string) (*domain.ProjectInstance, error) {
	const q = `
update project_instances
set status = 'completed', completed_at = now(), updated_at = now()
where id = $1::uuid and user_id = $2 and status = 'active'
returning ` + instanceColumns + `;
`
	p, err := scanInstance(r.db.QueryRow(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Reopen moves a completed instance back to active and clears completed_at.
func (r *InstanceRepository) Reopen(ctx context.Context, userID, id string) (*domain.ProjectInstance, error) {
	const q = `
update project_instances
set status = 'active', completed_at = null, updated_at = now()
where id = $1::uuid and user_id = $2 and status = 'completed'
returning ` + instanceColumns + `;
`
	p, err := scanInstance(r.db.QueryRow(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// InsertTasks attaches tasks to an instance, preserving order_index.
func (r *InstanceRepository) InsertTasks(ctx context.Context, instanceID string, tasks []domain.NewTask) error {
	const q = `
insert into user_instance_tasks (instance_id, title, description, order_index)
values ($1::uuid, $2, $3, $4);
`
	for _, t := range tasks {
		if _, err := r.db.Exec(ctx, q, instanceID, t.Title, t.Description, t.OrderIndex); err != nil {
			return fmt.Errorf("insert task %d: %w", t.OrderIndex, err)
		}
	}
	return nil
}

// ListTasks returns an instance's tasks ordered by order_index.
func (r *InstanceRepository) ListTasks(ctx context.Context, instanceID string) ([]domain.InstanceTask, error) {
	const q = `
select id, instance_id, title, coalesce(description, ''), order_index, coalesce(completed, false), completed_at
from user_instance_tasks
where instance_id = $1::uuid
order by order_index;
`
	rows, err := r.db.Query(ctx, q, instanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.InstanceTask, 0, 12)
	for rows.Next() {
		var t domain.InstanceTask
		if err := rows.Scan(
			&t.ID, &t.InstanceID, &t.Title, &t.Description, &t.OrderIndex,
			&t.Completed, &t.CompletedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ToggleTask flips a task's completion state. The instance ownership check
// goes through the join so a user cannot toggle someone else's tasks.
func (r *InstanceRepository) ToggleTask(ctx context.Context, userID, instanceID, taskID string) (*domain.InstanceTask, error) {
	const q = `
update user_instance_tasks t
set completed = not coalesce(t.completed, false),
    completed_at = case when coalesce(t.completed, false) then null else now() end,
    updated_at = now()
from project_instances i
where t.id = $1::uuid
  and t.instance_id = $2::uuid
  and i.id = t.instance_id
  and i.user_id = $3
returning t.id, t.instance_id, t.title, coalesce(t.description, ''), t.order_index, coalesce(t.completed, false), t.completed_at;
`
	var task domain.InstanceTask
	err := r.db.QueryRow(ctx, q, taskID, instanceID, userID).Scan(
		&task.ID, &task.InstanceID, &task.Title, &task.Description,
		&task.OrderIndex, &task.Completed, &task.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}
