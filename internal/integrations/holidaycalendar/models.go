package holidaycalendar

// PublicHoliday праздник из ответа календаря
type PublicHoliday struct {
	Date        string   `json:"date"` // YYYY-MM-DD
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Global      bool     `json:"global"`
	Types       []string `json:"types"`
}

func (h PublicHoliday) displayName() string {
	if h.Name != "" {
		return h.Name
	}
	return h.LocalName
}
