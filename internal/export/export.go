// Package export writes weeks, days and tasks as JSON, YAML or CSV.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/weeklit/internal/models"
	"github.com/julianstephens/weeklit/internal/storage"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatCSV:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json, yaml or csv)", s)
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer export format from %q", path)
	}
	return ParseFormat(ext)
}

type document struct {
	ExportedAt string       `json:"exported_at" yaml:"exported_at"`
	Weeks      []exportWeek `json:"weeks" yaml:"weeks"`
}

type exportWeek struct {
	ID         int         `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	CustomName string      `json:"customName,omitempty" yaml:"customName,omitempty"`
	WeekNumber int         `json:"weekNumber" yaml:"weekNumber"`
	StartDate  string      `json:"startDate" yaml:"startDate"`
	EndDate    string      `json:"endDate" yaml:"endDate"`
	DateRange  string      `json:"dateRange" yaml:"dateRange"`
	Days       []exportDay `json:"days" yaml:"days"`
}

type exportDay struct {
	ID       int          `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Date     string       `json:"date" yaml:"date"`
	FullDate string       `json:"fullDate" yaml:"fullDate"`
	Tasks    []exportTask `json:"tasks" yaml:"tasks"`
}

type exportTask struct {
	ID       int                   `json:"id" yaml:"id"`
	Name     string                `json:"name" yaml:"name"`
	Status   models.TaskStatus     `json:"status" yaml:"status"`
	Category string                `json:"category" yaml:"category"`
	Date     string                `json:"date" yaml:"date"`
	History  []models.HistoryEntry `json:"history" yaml:"history"`
}

func build(snap storage.Snapshot, now time.Time) document {
	tasksByDay := make(map[int][]exportTask)
	for _, t := range snap.Tasks {
		tasksByDay[t.DayID] = append(tasksByDay[t.DayID], exportTask{
			ID:       t.ID,
			Name:     t.Name,
			Status:   t.Status,
			Category: t.Category,
			Date:     t.Date,
			History:  t.History,
		})
	}

	daysByWeek := make(map[int][]exportDay)
	for _, d := range snap.Days {
		tasks := tasksByDay[d.ID]
		if tasks == nil {
			tasks = []exportTask{}
		}
		daysByWeek[d.WeekID] = append(daysByWeek[d.WeekID], exportDay{
			ID:       d.ID,
			Name:     d.Name,
			Date:     d.Date,
			FullDate: d.FullDate,
			Tasks:    tasks,
		})
	}

	doc := document{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Weeks:      make([]exportWeek, 0, len(snap.Weeks)),
	}
	for _, w := range snap.Weeks {
		doc.Weeks = append(doc.Weeks, exportWeek{
			ID:         w.ID,
			Name:       w.Name,
			CustomName: w.CustomName,
			WeekNumber: w.WeekNumber,
			StartDate:  w.StartDate,
			EndDate:    w.EndDate,
			DateRange:  w.DateRange,
			Days:       daysByWeek[w.ID],
		})
	}
	return doc
}

// Write renders snap to w. now is recorded as the export time.
func Write(w io.Writer, format Format, snap storage.Snapshot, now time.Time) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(build(snap, now)); err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(build(snap, now)); err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		return enc.Close()
	case FormatCSV:
		return writeCSV(w, snap)
	}
	return fmt.Errorf("unknown export format %q", format)
}
