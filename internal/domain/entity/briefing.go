package entity

// Briefing is a generated operational briefing and the model that produced it.
type Briefing struct {
	Text      string `json:"text"`
	ModelUsed string `json:"modelUsed"`
}
