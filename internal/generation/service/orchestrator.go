package service

import (
	"context"

	"github.com/hearthplan/diy-backend/internal/generation/domain"
)

// QuotaChecker decides whether a user may run a generation right now.
type QuotaChecker interface {
	Allow(ctx context.Context, userID string) (bool, error)
}

// Generator produces a candidate project from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*domain.CandidateProject, error)
}

// ProjectSaver persists a validated candidate.
type ProjectSaver interface {
	Save(ctx context.Context, userID string, candidate *domain.CandidateProject) (*SaveResult, error)
}

// PreviewStore holds validated candidates between the preview and confirm
// calls.
type PreviewStore interface {
	Put(ctx context.Context, userID string, candidate *domain.CandidateProject) (string, error)
	Get(ctx context.Context, userID, previewID string) (*domain.CandidateProject, error)
	Delete(ctx context.Context, userID, previewID string) error
}

// Logger is the minimal logging surface the orchestrator needs.
type Logger interface {
	Info(ctx context.Context, format string, args ...any)
	Error(ctx context.Context, format string, args ...any)
}

// Service runs the generation pipeline: quota check, model call,
// validation, persistence.
type Service struct {
	quota     QuotaChecker
	generator Generator
	saver     ProjectSaver
	previews  PreviewStore
	log       Logger
}

func NewService(quota QuotaChecker, gen Generator, saver ProjectSaver, previews PreviewStore, log Logger) *Service {
	return &Service{quota: quota, generator: gen, saver: saver, previews: previews, log: log}
}

// GenerateAndSave runs the full pipeline and persists the result directly.
func (s *Service) GenerateAndSave(ctx context.Context, userID, prompt string) (*SaveResult, error) {
	candidate, err := s.generate(ctx, userID, prompt)
	if err != nil {
		return nil, err
	}

	result, err := s.saver.Save(ctx, userID, candidate)
	if err != nil {
		s.log.Error(ctx, "generation persist failed for user %s: %v", userID, err)
		return nil, err
	}
	s.log.Info(ctx, "generated project %s for user %s (%d failed items)",
		result.Instance.ID, userID, len(result.FailedItems))
	return result, nil
}

// Preview runs quota, generation and validation, then parks the candidate
// in the preview store instead of saving it. The preview consumes no quota
// until confirmed; only confirmation writes a private template.
func (s *Service) Preview(ctx context.Context, userID, prompt string) (string, *domain.CandidateProject, error) {
	candidate, err := s.generate(ctx, userID, prompt)
	if err != nil {
		return "", nil, err
	}

	id, err := s.previews.Put(ctx, userID, candidate)
	if err != nil {
		return "", nil, err
	}
	return id, candidate, nil
}

// ConfirmPreview persists a previously previewed candidate. Quota is
// re-checked at confirm time since the preview may sit for up to its TTL.
func (s *Service) ConfirmPreview(ctx context.Context, userID, previewID string) (*SaveResult, error) {
	candidate, err := s.previews.Get(ctx, userID, previewID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.quota.Allow(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrRateLimited
	}

	result, err := s.saver.Save(ctx, userID, candidate)
	if err != nil {
		return nil, err
	}

	// Best effort: a leftover preview just expires with its TTL.
	if err := s.previews.Delete(ctx, userID, previewID); err != nil {
		s.log.Error(ctx, "delete preview %s: %v", previewID, err)
	}
	return result, nil
}

func (s *Service) generate(ctx context.Context, userID, prompt string) (*domain.CandidateProject, error) {
	allowed, err := s.quota.Allow(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.log.Info(ctx, "generation denied for user %s: quota exhausted", userID)
		return nil, domain.ErrRateLimited
	}

	candidate, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.log.Error(ctx, "generation upstream call failed: %v", err)
		return nil, err
	}

	if err := ValidateCandidate(candidate); err != nil {
		s.log.Error(ctx, "generated candidate rejected: %v", err)
		return nil, err
	}
	return candidate, nil
}
