package external

// GeocodingResponse represents the response from the Open-Meteo geocoding search
type GeocodingResponse struct {
	Results []GeocodingResult `json:"results"`
}

// GeocodingResult is a single place returned by the geocoding search
type GeocodingResult struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CountryCode string  `json:"country_code"`
	Admin1      string  `json:"admin1"`
	Timezone    string  `json:"timezone"`
}

// ForecastResponse represents the response from the Open-Meteo forecast API.
// Numeric series use pointers since the provider sends null for missing samples.
type ForecastResponse struct {
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Timezone  string          `json:"timezone"`
	Current   *CurrentWeather `json:"current,omitempty"`
	Hourly    HourlySeries    `json:"hourly"`
	Daily     DailySeries     `json:"daily"`
}

// CurrentWeather is the instantaneous reading
type CurrentWeather struct {
	Time          string   `json:"time"`
	Temperature2m *float64 `json:"temperature_2m"`
}

// HourlySeries holds the flat hourly samples, starting at local midnight of the first day
type HourlySeries struct {
	Time          []string   `json:"time"`
	Precipitation []*float64 `json:"precipitation"`
}

// DailySeries holds one row per day, starting at the current local day
type DailySeries struct {
	Time                        []string   `json:"time"`
	Temperature2mMax            []*float64 `json:"temperature_2m_max"`
	Temperature2mMin            []*float64 `json:"temperature_2m_min"`
	PrecipitationSum            []*float64 `json:"precipitation_sum"`
	PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
	WindSpeed10mMax             []*float64 `json:"wind_speed_10m_max"`
	WeatherCode                 []*float64 `json:"weather_code"`
}

// OpenMeteoError is the body Open-Meteo sends with 4xx answers
type OpenMeteoError struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}
