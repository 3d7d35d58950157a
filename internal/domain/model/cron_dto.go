package model

// WarmUpResult is the outcome of warming one city
type WarmUpResult struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Success bool   `json:"success"`
	Status  int    `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WarmUpReport summarizes one cache warm-up run
type WarmUpReport struct {
	RunID     string         `json:"runId"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Results   []WarmUpResult `json:"results"`
}

// CronResponse is the body of GET /cron
type CronResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Results []WarmUpResult `json:"results,omitempty"`
}
