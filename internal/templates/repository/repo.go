package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hearthplan/diy-backend/internal/templates/domain"
)

// TemplateRepository provides persistence operations for project templates.
type TemplateRepository struct {
	db *pgxpool.Pool
}

func NewTemplateRepository(db *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{db: db}
}

const templateColumns = `id, name, description, difficulty, estimated_hours, category, visibility, status, created_by, version, created_at, updated_at`

func scanTemplate(row pgx.Row) (*domain.ProjectTemplate, error) {
	var t domain.ProjectTemplate
	err := row.Scan(
		&t.ID, &t.Name, &t.Description, &t.Difficulty, &t.EstimatedHours,
		&t.Category, &t.Visibility, &t.Status, &t.CreatedBy, &t.Version,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new template.
func (r *TemplateRepository) Create(ctx context.Context, req domain.CreateTemplateRequest) (*domain.ProjectTemplate, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name required")
	}
	if !domain.ValidDifficulty(req.Difficulty) {
		return nil, domain.ErrInvalidDifficulty
	}
	if !domain.ValidCategory(req.Category) {
		return nil, domain.ErrInvalidCategory
	}
	if !domain.ValidEstimatedHours(req.EstimatedHours) {
		return nil, domain.ErrInvalidHours
	}

	const q = `
insert into project_templates (name, description, difficulty, estimated_hours, category, visibility, status, created_by)
values ($1, $2, $3, $4, $5, $6, $7, $8)
returning ` + templateColumns + `;
`
	return scanTemplate(r.db.QueryRow(ctx, q,
		req.Name, req.Description, req.Difficulty, req.EstimatedHours,
		req.Category, req.Visibility, req.Status, req.CreatedBy,
	))
}

// GetByID fetches a single template.
func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*domain.ProjectTemplate, error) {
	const q = `
select ` + templateColumns + `
from project_templates
where id = $1::uuid;
`
	t, err := scanTemplate(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListPublished returns published public templates, newest first,
// optionally narrowed by category, difficulty and a name substring.
func (r *TemplateRepository) ListPublished(ctx context.Context, filter domain.ListFilter) ([]domain.ProjectTemplate, error) {
	const q = `
select ` + templateColumns + `
from project_templates
where visibility = 'public'
  and status = 'published'
  and ($1 = '' or category = $1)
  and ($2 = '' or difficulty = $2)
  and ($3 = '' or name ilike '%' || $3 || '%')
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, filter.Category, filter.Difficulty, filter.Query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ProjectTemplate, 0, 16)
	for rows.Next() {
		var t domain.ProjectTemplate
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.Difficulty, &t.EstimatedHours,
			&t.Category, &t.Visibility, &t.Status, &t.CreatedBy, &t.Version,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateStatus moves a template between draft/published/archived.
// Only the owner may change status.
func (r *TemplateRepository) UpdateStatus(ctx context.Context, ownerID, id, status string) (*domain.ProjectTemplate, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	const q = `
update project_templates
set status = $3, updated_at = now()
where id = $1::uuid and created_by = $2
returning ` + templateColumns + `;
`
	t, err := scanTemplate(r.db.QueryRow(ctx, q, id, ownerID, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// CountPrivateCreatedSince counts private templates a user created at or
// after the given time. The generation rate limiter reads its quota from
// this; the filter on created_by is load-bearing (a global count would
// throttle everyone at once).
func (r *TemplateRepository) CountPrivateCreatedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	const q = `
select count(*)
from project_templates
where visibility = 'private'
  and created_by = $1
  and created_at >= $2;
`
	var count int
	if err := r.db.QueryRow(ctx, q, userID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count private templates: %w", err)
	}
	return count, nil
}

// ArchiveStaleDrafts archives private drafts untouched since the cutoff.
// Used by the nightly maintenance job.
func (r *TemplateRepository) ArchiveStaleDrafts(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `
update project_templates
set status = 'archived', updated_at = now()
where visibility = 'private'
  and status = 'draft'
  and updated_at < $1;
`
	ct, err := r.db.Exec(ctx, q, cutoff)
	if err != nil {
		return 0, fmt.Errorf("archive stale drafts: %w", err)
	}
	return ct.RowsAffected(), nil
}
