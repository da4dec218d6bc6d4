package domain

// CandidateProject is the raw, not-yet-trusted output of a generation
// call. It is held in memory (or the preview cache) until it is validated
// and either discarded or persisted.
type CandidateProject struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	ToolsAndMaterials []string        `json:"tools_and_materials"`
	Difficulty        string          `json:"difficulty"`
	EstimatedHours    int             `json:"estimated_hours"`
	Category          string          `json:"category"`
	Tasks             []GeneratedTask `json:"tasks"`
}

// GeneratedTask is one step of a candidate project. OrderIndex must be a
// contiguous, duplicate-free 1..N sequence across the candidate's tasks.
type GeneratedTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
}

// MaxTasks bounds how many tasks a candidate may carry.
const MaxTasks = 12
