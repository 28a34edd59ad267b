package dto

type CompletionInput struct {
	Title                  string
	ActualDurationSeconds  int
	PlannedDurationSeconds int
	CompletedGoals         int
	TotalGoals             int
}

type BackendOutput struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Detail    string `json:"detail,omitempty"`
}

type DeliveryOutput struct {
	Backend string `json:"backend"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}
