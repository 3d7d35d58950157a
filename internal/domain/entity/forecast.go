package entity

// HoursPerDay is the number of hourlyRain entries every summary carries.
const HoursPerDay = 24

// HourlyRain is the precipitation expected for one hour of the day
type HourlyRain struct {
	Hour   int     `json:"hour"`
	RainMm float64 `json:"rainMm"`
}

// DailyForecastSummary is the cached forecast of one city for one day.
type DailyForecastSummary struct {
	Label              string       `json:"label"`
	MaxTempC           int          `json:"maxTempC"`
	MinTempC           int          `json:"minTempC"`
	TotalRainMm        float64      `json:"totalRainMm"`
	RainProbabilityPct *int         `json:"rainProbabilityPct,omitempty"`
	WindKph            float64      `json:"windKph"`
	ConditionCode      int          `json:"conditionCode"`
	Condition          string       `json:"condition"`
	HourlyRain         []HourlyRain `json:"hourlyRain"`
	CurrentTempC       *int         `json:"currentTempC,omitempty"`
	Latitude           *float64     `json:"latitude,omitempty"`
	Longitude          *float64     `json:"longitude,omitempty"`
}

// NewHourlyRain returns the 24 hours of a day with no rain.
func NewHourlyRain() []HourlyRain {
	hours := make([]HourlyRain, HoursPerDay)
	for h := range hours {
		hours[h].Hour = h
	}
	return hours
}

var conditionDescriptions = map[int]string{
	0:  "Céu limpo",
	1:  "Principalmente limpo",
	2:  "Parcialmente nublado",
	3:  "Nublado",
	45: "Nevoeiro",
	48: "Nevoeiro com geada",
	51: "Chuvisco leve",
	53: "Chuvisco moderado",
	55: "Chuvisco denso",
	56: "Chuvisco gelado leve",
	57: "Chuvisco gelado denso",
	61: "Chuva fraca",
	63: "Chuva moderada",
	65: "Chuva forte",
	66: "Chuva gelada leve",
	67: "Chuva gelada forte",
	71: "Neve fraca",
	73: "Neve moderada",
	75: "Neve forte",
	77: "Grãos de neve",
	80: "Pancadas de chuva fracas",
	81: "Pancadas de chuva moderadas",
	82: "Pancadas de chuva violentas",
	85: "Pancadas de neve fracas",
	86: "Pancadas de neve fortes",
	95: "Trovoada",
	96: "Trovoada com granizo fraco",
	99: "Trovoada com granizo forte",
}

// ConditionDescription translates a WMO weather code into a pt-BR description.
func ConditionDescription(code int) string {
	if d, ok := conditionDescriptions[code]; ok {
		return d
	}
	return "Condição desconhecida"
}
