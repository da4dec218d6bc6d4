package service

import (
	"fmt"
	"sort"

	"github.com/hearthplan/diy-backend/internal/generation/domain"
	templates "github.com/hearthplan/diy-backend/internal/templates/domain"
)

// ValidateCandidate checks a model-produced project against the schema the
// rest of the pipeline assumes. On success the candidate's tasks are sorted
// ascending by order index; on failure the candidate is left as-is and a
// ValidationError describes the first problem found.
func ValidateCandidate(p *domain.CandidateProject) error {
	if p == nil {
		return &domain.ValidationError{Msg: "candidate is nil"}
	}
	if p.Name == "" {
		return &domain.ValidationError{Msg: "name is required"}
	}
	if p.Description == "" {
		return &domain.ValidationError{Msg: "description is required"}
	}
	if len(p.ToolsAndMaterials) == 0 {
		return &domain.ValidationError{Msg: "tools_and_materials is required"}
	}
	for i, name := range p.ToolsAndMaterials {
		if name == "" {
			return &domain.ValidationError{Msg: fmt.Sprintf("tools_and_materials[%d] is empty", i)}
		}
	}
	if !templates.ValidDifficulty(p.Difficulty) {
		return &domain.ValidationError{Msg: fmt.Sprintf("invalid difficulty %q", p.Difficulty)}
	}
	if !templates.ValidCategory(p.Category) {
		return &domain.ValidationError{Msg: fmt.Sprintf("invalid category %q", p.Category)}
	}
	if !templates.ValidEstimatedHours(p.EstimatedHours) {
		return &domain.ValidationError{Msg: fmt.Sprintf("estimated_hours %d out of range", p.EstimatedHours)}
	}

	n := len(p.Tasks)
	if n < 1 || n > domain.MaxTasks {
		return &domain.ValidationError{Msg: "task count out of bounds"}
	}
	seen := make(map[int]bool, n)
	for _, t := range p.Tasks {
		if t.Title == "" || t.Description == "" || t.OrderIndex < 1 || t.OrderIndex > n {
			return &domain.ValidationError{Msg: "task missing fields or bad order_index"}
		}
		if seen[t.OrderIndex] {
			return &domain.ValidationError{Msg: fmt.Sprintf("duplicate order_index %d", t.OrderIndex)}
		}
		seen[t.OrderIndex] = true
	}

	// N tasks with distinct indices in [1, N] is necessarily the full
	// 1..N sequence, so sorting yields a clean plan.
	sort.Slice(p.Tasks, func(i, j int) bool {
		return p.Tasks[i].OrderIndex < p.Tasks[j].OrderIndex
	})
	return nil
}
