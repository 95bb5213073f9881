package models

// Week is a Monday-to-Sunday period. StartDate and EndDate are YYYY-MM-DD.
type Week struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	CustomName string `json:"customName,omitempty"`
	WeekNumber int    `json:"weekNumber"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	DateRange  string `json:"dateRange"`
}

// DisplayName returns the custom name when set, otherwise the generated name.
func (w Week) DisplayName() string {
	if w.CustomName != "" {
		return w.CustomName
	}
	return w.Name
}

// Weekday names in the fixed order used by every week.
var Weekdays = [7]string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

// Day is one calendar day of a week. WeekID is a lookup reference only.
type Day struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"`     // display form, e.g. "Jan 15"
	FullDate string `json:"fullDate"` // YYYY-MM-DD
	WeekID   int    `json:"weekId"`
}
