package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hearthplan/diy-backend/internal/inventory/domain"
)

// InventoryRepository provides persistence for tools/materials and their
// links to templates.
type InventoryRepository struct {
	db *pgxpool.Pool
}

func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// CreateItem inserts a tool/material row owned by the given user.
func (r *InventoryRepository) CreateItem(ctx context.Context, userID, name string) (*domain.ToolOrMaterial, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}

	const q = `
insert into tools_and_materials (name, user_id)
values ($1, $2)
returning id, name, coalesce(category, ''), coalesce(unit, ''), coalesce(description, ''), user_id, created_at;
`
	var item domain.ToolOrMaterial
	err := r.db.QueryRow(ctx, q, name, userID).Scan(
		&item.ID, &item.Name, &item.Category, &item.Unit, &item.Description,
		&item.UserID, &item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return &item, nil
}

// LinkToTemplate joins an item to a template with quantity and unit.
func (r *InventoryRepository) LinkToTemplate(ctx context.Context, link domain.TemplateToolLink) error {
	const q = `
insert into template_tools_and_materials (template_id, item_id, quantity, unit, required)
values ($1::uuid, $2::uuid, $3, $4, $5);
`
	_, err := r.db.Exec(ctx, q, link.TemplateID, link.ItemID, link.Quantity, link.Unit, link.Required)
	if err != nil {
		return fmt.Errorf("link item to template: %w", err)
	}
	return nil
}

// ListByTemplate returns the tools linked to a template.
func (r *InventoryRepository) ListByTemplate(ctx context.Context, templateID string) ([]domain.TemplateTool, error) {
	const q = `
select l.item_id, i.name, l.quantity, l.unit, coalesce(l.required, true)
from template_tools_and_materials l
join tools_and_materials i on i.id = l.item_id
where l.template_id = $1::uuid
order by i.name;
`
	rows, err := r.db.Query(ctx, q, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.TemplateTool, 0, 8)
	for rows.Next() {
		var t domain.TemplateTool
		if err := rows.Scan(&t.ItemID, &t.Name, &t.Quantity, &t.Unit, &t.Required); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListByUser returns all items owned by a user, newest first.
func (r *InventoryRepository) ListByUser(ctx context.Context, userID string) ([]domain.ToolOrMaterial, error) {
	const q = `
select id, name, coalesce(category, ''), coalesce(unit, ''), coalesce(description, ''), user_id, created_at
from tools_and_materials
where user_id = $1
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ToolOrMaterial, 0, 16)
	for rows.Next() {
		var item domain.ToolOrMaterial
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Category, &item.Unit, &item.Description,
			&item.UserID, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
