package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/julianstephens/weeklit/internal/models"
	"github.com/julianstephens/weeklit/internal/storage"
)

var csvHeader = []string{"ID", "Week", "WeekNumber", "Day", "Date", "Name", "Category", "Status", "History"}

// writeCSV emits one row per task. History is the number of entries.
func writeCSV(w io.Writer, snap storage.Snapshot) error {
	days := make(map[int]models.Day, len(snap.Days))
	for _, d := range snap.Days {
		days[d.ID] = d
	}
	weeks := make(map[int]models.Week, len(snap.Weeks))
	for _, wk := range snap.Weeks {
		weeks[wk.ID] = wk
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range snap.Tasks {
		var weekName, weekNumber, dayName string
		if d, ok := days[t.DayID]; ok {
			dayName = d.Name
			if wk, ok := weeks[d.WeekID]; ok {
				weekName = wk.DisplayName()
				weekNumber = strconv.Itoa(wk.WeekNumber)
			}
		}

		row := []string{
			strconv.Itoa(t.ID),
			weekName,
			weekNumber,
			dayName,
			t.Date,
			t.Name,
			t.Category,
			string(t.Status),
			strconv.Itoa(len(t.History)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
