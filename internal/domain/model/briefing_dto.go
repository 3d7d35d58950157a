package model

import (
	"bytes"
	"encoding/json"

	"weather-api/internal/domain/entity"
)

// BriefingRequest is the body of POST /aiagent
type BriefingRequest struct {
	WeatherData []entity.DailyForecastSummary `json:"weatherData"`
	DayOffset   DayOffset                     `json:"dayOffset" swaggertype:"string" example:"1"`
}

// BriefingResponse is the generated briefing
type BriefingResponse struct {
	Summary   string `json:"summary"`
	ModelUsed string `json:"modelUsed"`
}

// DayOffset keeps the raw text of a dayOffset field sent either as a JSON string ("2") or a JSON number (2).
// null decodes to "".
type DayOffset string

func (d *DayOffset) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*d = DayOffset(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*d = DayOffset(number.String())
	return nil
}
