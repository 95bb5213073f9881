// Package history derives the append-only change log entries for tasks.
package history

import (
	"time"

	"github.com/julianstephens/weeklit/internal/constants"
	"github.com/julianstephens/weeklit/internal/models"
)

// Created returns the first entry of every task's history.
func Created(status models.TaskStatus, user string, now time.Time) models.HistoryEntry {
	return models.HistoryEntry{
		Action:    models.ActionCreated,
		Status:    status,
		Timestamp: now.Format(constants.TimestampFormat),
		User:      user,
	}
}

// Diff returns the entries produced by applying update to old: a
// status_changed entry when the status changes, then one updated entry
// listing every other field whose value changes. Both share one timestamp.
// Values are compared by plain equality.
func Diff(old models.Task, update models.TaskUpdate, now time.Time) []models.HistoryEntry {
	ts := now.Format(constants.TimestampFormat)
	var entries []models.HistoryEntry

	if update.Status != nil && *update.Status != old.Status {
		entries = append(entries, models.HistoryEntry{
			Action:         models.ActionStatusChanged,
			Status:         *update.Status,
			PreviousStatus: old.Status,
			Timestamp:      ts,
		})
	}

	changes := make(map[string]models.FieldChange)
	if update.Name != nil && *update.Name != old.Name {
		changes["name"] = models.FieldChange{Old: old.Name, New: *update.Name}
	}
	if update.Category != nil && *update.Category != old.Category {
		changes["category"] = models.FieldChange{Old: old.Category, New: *update.Category}
	}
	if update.DayID != nil && *update.DayID != old.DayID {
		changes["dayId"] = models.FieldChange{Old: old.DayID, New: *update.DayID}
	}
	if update.Date != nil && *update.Date != old.Date {
		changes["date"] = models.FieldChange{Old: old.Date, New: *update.Date}
	}

	if len(changes) > 0 {
		entries = append(entries, models.HistoryEntry{
			Action:    models.ActionUpdated,
			Changes:   changes,
			Timestamp: ts,
		})
	}

	return entries
}
