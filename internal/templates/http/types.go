package http

type createTemplateReq struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Difficulty     string `json:"difficulty"`
	EstimatedHours int    `json:"estimated_hours"`
	Category       string `json:"category"`
	Visibility     string `json:"visibility,omitempty"`
	Status         string `json:"status,omitempty"`
}

type updateStatusReq struct {
	Status string `json:"status"`
}
