package domain

import "time"

// ToolOrMaterial is a user-owned tool or material entry.
type ToolOrMaterial struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	Description string    `json:"description,omitempty"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TemplateToolLink ties an item to a template with a quantity.
type TemplateToolLink struct {
	TemplateID string    `json:"template_id"`
	ItemID     string    `json:"item_id"`
	Quantity   int       `json:"quantity"`
	Unit       string    `json:"unit"`
	Required   bool      `json:"required"`
	CreatedAt  time.Time `json:"created_at"`
}

// TemplateTool is a joined view of a link and its item, as returned when
// fetching a template's tool list.
type TemplateTool struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	Required bool   `json:"required"`
}
