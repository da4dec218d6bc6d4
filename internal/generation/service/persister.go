package service

import (
	"context"
	"sync"

	"github.com/hearthplan/diy-backend/internal/generation/domain"
	instances "github.com/hearthplan/diy-backend/internal/instances/domain"
	inventory "github.com/hearthplan/diy-backend/internal/inventory/domain"
	templates "github.com/hearthplan/diy-backend/internal/templates/domain"
)

// TemplateCreator persists new templates.
type TemplateCreator interface {
	Create(ctx context.Context, req templates.CreateTemplateRequest) (*templates.ProjectTemplate, error)
}

// InstanceCreator persists new instances and their task rows.
type InstanceCreator interface {
	Create(ctx context.Context, req instances.CreateInstanceRequest) (*instances.ProjectInstance, error)
	InsertTasks(ctx context.Context, instanceID string, tasks []instances.NewTask) error
}

// ItemLinker persists tool/material items and their template links.
type ItemLinker interface {
	CreateItem(ctx context.Context, userID, name string) (*inventory.ToolOrMaterial, error)
	LinkToTemplate(ctx context.Context, link inventory.TemplateToolLink) error
}

// ItemFailure records one tool/material that could not be saved or linked.
type ItemFailure struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// SaveResult is the outcome of persisting a validated candidate. A non-nil
// result with a non-empty FailedItems means the project exists but some of
// its tool links are missing.
type SaveResult struct {
	Template    *templates.ProjectTemplate `json:"template"`
	Instance    *instances.ProjectInstance `json:"instance"`
	FailedItems []ItemFailure              `json:"failed_items"`
}

// Persister writes a validated candidate project across the template,
// instance, task and inventory tables.
type Persister struct {
	templates TemplateCreator
	instances InstanceCreator
	items     ItemLinker
}

func NewPersister(t TemplateCreator, i InstanceCreator, items ItemLinker) *Persister {
	return &Persister{templates: t, instances: i, items: items}
}

// Save persists in order: template, then instance, then tasks, then the
// tool items with their links. The first three are load-bearing and abort
// on failure; item writes run concurrently and individual failures are
// collected instead of aborting. A template orphaned by a later failure is
// left in place; it is private and never surfaces in public listings.
func (p *Persister) Save(ctx context.Context, userID string, candidate *domain.CandidateProject) (*SaveResult, error) {
	tpl, err := p.templates.Create(ctx, templates.CreateTemplateRequest{
		Name:           candidate.Name,
		Description:    candidate.Description,
		Difficulty:     candidate.Difficulty,
		EstimatedHours: candidate.EstimatedHours,
		Category:       candidate.Category,
		Visibility:     templates.VisibilityPrivate,
		Status:         templates.StatusPublished,
		CreatedBy:      userID,
	})
	if err != nil {
		return nil, &domain.PersistError{Step: "template", Err: err}
	}

	inst, err := p.instances.Create(ctx, instances.CreateInstanceRequest{
		TemplateID:  tpl.ID,
		UserID:      userID,
		Title:       candidate.Name,
		Description: candidate.Description,
	})
	if err != nil {
		return nil, &domain.PersistError{Step: "instance", Err: err}
	}

	tasks := make([]instances.NewTask, 0, len(candidate.Tasks))
	for _, t := range candidate.Tasks {
		tasks = append(tasks, instances.NewTask{
			Title:       t.Title,
			Description: t.Description,
			OrderIndex:  t.OrderIndex,
		})
	}
	if err := p.instances.InsertTasks(ctx, inst.ID, tasks); err != nil {
		return nil, &domain.PersistError{Step: "tasks", Err: err}
	}

	result := &SaveResult{Template: tpl, Instance: inst, FailedItems: []ItemFailure{}}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, name := range candidate.ToolsAndMaterials {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			if err := p.saveItem(ctx, userID, tpl.ID, name); err != nil {
				mu.Lock()
				result.FailedItems = append(result.FailedItems, ItemFailure{Name: name, Reason: err.Error()})
				mu.Unlock()
			}
		}(name)
	}
	wg.Wait()

	return result, nil
}

func (p *Persister) saveItem(ctx context.Context, userID, templateID, name string) error {
	item, err := p.items.CreateItem(ctx, userID, name)
	if err != nil {
		return err
	}
	return p.items.LinkToTemplate(ctx, inventory.TemplateToolLink{
		TemplateID: templateID,
		ItemID:     item.ID,
		Quantity:   1,
		Unit:       "piece",
		Required:   true,
	})
}
