package briefing

import (
	"encoding/json"
	"fmt"
	"time"

	"weather-api/internal/domain/entity"
	"weather-api/pkg/msg"
)

var weekdayNames = [...]string{
	time.Sunday:    "domingo",
	time.Monday:    "segunda-feira",
	time.Tuesday:   "terça-feira",
	time.Wednesday: "quarta-feira",
	time.Thursday:  "quinta-feira",
	time.Friday:    "sexta-feira",
	time.Saturday:  "sábado",
}

// DayName names the day dayOffset days after now in loc: "hoje", "amanhã" or the pt-BR weekday.
func DayName(now time.Time, loc *time.Location, dayOffset int) string {
	switch dayOffset {
	case 0:
		return "hoje"
	case 1:
		return "amanhã"
	}

	if loc == nil {
		loc = time.UTC
	}
	return weekdayNames[now.In(loc).AddDate(0, 0, dayOffset).Weekday()]
}

// BuildPrompt renders the briefing prompt with the batch as indented JSON
func BuildPrompt(dayName string, summaries []entity.DailyForecastSummary) (string, error) {
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode weather data: %w", err)
	}
	return msg.GetMessage("briefing.prompt", dayName, string(data)), nil
}
