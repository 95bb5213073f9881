// Package weeks builds Week entities and their seven Days.
package weeks

import (
	"fmt"
	"time"

	"github.com/julianstephens/weeklit/internal/models"
	"github.com/julianstephens/weeklit/internal/utils"
)

// DaysPerWeek is the number of Day entities generated for every Week.
const DaysPerWeek = len(models.Weekdays)

// DayID returns the id of the day at offset (0 = Monday) in week weekID.
func DayID(weekID, offset int) int {
	return (weekID-1)*DaysPerWeek + offset + 1
}

// Name returns the generated name for a week number.
func Name(weekNumber int) string {
	return fmt.Sprintf("Week %d", weekNumber)
}

// Generate builds week weekID with sequence number weekNumber starting on
// startDate, which callers pass as a Monday. The time of day is ignored.
func Generate(weekID, weekNumber int, startDate time.Time) (models.Week, []models.Day) {
	start := utils.StartOfDay(startDate)
	end := start.AddDate(0, 0, DaysPerWeek-1)

	week := models.Week{
		ID:         weekID,
		Name:       Name(weekNumber),
		WeekNumber: weekNumber,
		StartDate:  utils.ISODate(start),
		EndDate:    utils.ISODate(end),
		DateRange:  fmt.Sprintf("%s - %s, %d", utils.FormatDisplay(start), utils.FormatDisplay(end), start.Year()),
	}

	days := make([]models.Day, DaysPerWeek)
	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i] = models.Day{
			ID:       DayID(weekID, i),
			Name:     models.Weekdays[i],
			Date:     utils.FormatShort(d),
			FullDate: utils.ISODate(d),
			WeekID:   weekID,
		}
	}

	return week, days
}

// GenerateFrom is Generate for a YYYY-MM-DD start date.
func GenerateFrom(weekID, weekNumber int, startDate string) (models.Week, []models.Day, error) {
	start, err := utils.ParseDate(startDate, time.UTC)
	if err != nil {
		return models.Week{}, nil, err
	}
	week, days := Generate(weekID, weekNumber, start)
	return week, days, nil
}

// Containing generates the week that contains t.
func Containing(weekID, weekNumber int, t time.Time) (models.Week, []models.Day) {
	return Generate(weekID, weekNumber, utils.StartOfWeek(t))
}
