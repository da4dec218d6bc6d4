package service

import (
	"context"
	"fmt"

	"github.com/hearthplan/diy-backend/internal/instances/domain"
	templatedomain "github.com/hearthplan/diy-backend/internal/templates/domain"
)

// InstanceStore is the persistence surface the service needs.
type InstanceStore interface {
	Create(ctx context.Context, req domain.CreateInstanceRequest) (*domain.ProjectInstance, error)
	GetByID(ctx context.Context, userID, id string) (*domain.ProjectInstance, error)
	ListByUser(ctx context.Context, userID, status string) ([]domain.ProjectInstance, error)
	Complete(ctx context.Context, userID, id string) (*domain.ProjectInstance, error)
	Reopen(ctx context.Context, userID, id string) (*domain.ProjectInstance, error)
	InsertTasks(ctx context.Context, instanceID string, tasks []domain.NewTask) error
	ListTasks(ctx context.Context, instanceID string) ([]domain.InstanceTask, error)
	ToggleTask(ctx context.Context, userID, instanceID, taskID string) (*domain.InstanceTask, error)
}

// TemplateGetter resolves the template an instance starts from.
type TemplateGetter interface {
	GetByID(ctx context.Context, id string) (*templatedomain.ProjectTemplate, error)
}

// InstanceService handles business logic for project instances.
type InstanceService struct {
	store     InstanceStore
	templates TemplateGetter
}

func NewInstanceService(store InstanceStore, templates TemplateGetter) *InstanceService {
	return &InstanceService{store: store, templates: templates}
}

// StartFromTemplate creates an active instance, copying the template's
// name and description as the initial title/description.
func (s *InstanceService) StartFromTemplate(ctx context.Context, userID, templateID string) (*domain.ProjectInstance, error) {
	tmpl, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("resolve template: %w", err)
	}

	return s.store.Create(ctx, domain.CreateInstanceRequest{
		TemplateID:  tmpl.ID,
		UserID:      userID,
		Title:       tmpl.Name,
		Description: tmpl.Description,
	})
}

// Get returns an instance with its tasks.
func (s *InstanceService) Get(ctx context.Context, userID, id string) (*domain.ProjectInstance, []domain.InstanceTask, error) {
	inst, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}

	tasks, err := s.store.ListTasks(ctx, inst.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list tasks: %w", err)
	}
	return inst, tasks, nil
}

// List returns a user's instances, optionally filtered by status.
func (s *InstanceService) List(ctx context.Context, userID, status string) ([]domain.ProjectInstance, error) {
	if status != "" && status != domain.StatusActive && status != domain.StatusCompleted {
		return nil, fmt.Errorf("invalid status filter %q", status)
	}
	return s.store.ListByUser(ctx, userID, status)
}

// Complete transitions active → completed. The repository only matches
// active rows, so completing twice surfaces as not found; translate that
// to a clearer error when the instance exists but is already done.
func (s *InstanceService) Complete(ctx context.Context, userID, id string) (*domain.ProjectInstance, error) {
	inst, err := s.store.Complete(ctx, userID, id)
	if err == domain.ErrNotFound {
		if existing, getErr := s.store.GetByID(ctx, userID, id); getErr == nil && existing.Status == domain.StatusCompleted {
			return nil, domain.ErrAlreadyCompleted
		}
	}
	return inst, err
}

// Reopen transitions completed → active.
func (s *InstanceService) Reopen(ctx context.Context, userID, id string) (*domain.ProjectInstance, error) {
	inst, err := s.store.Reopen(ctx, userID, id)
	if err == domain.ErrNotFound {
		if existing, getErr := s.store.GetByID(ctx, userID, id); getErr == nil && existing.Status == domain.StatusActive {
			return nil, domain.ErrNotCompleted
		}
	}
	return inst, err
}

// ToggleTask flips one task's completion state.
func (s *InstanceService) ToggleTask(ctx context.Context, userID, instanceID, taskID string) (*domain.InstanceTask, error) {
	return s.store.ToggleTask(ctx, userID, instanceID, taskID)
}
