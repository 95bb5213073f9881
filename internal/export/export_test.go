package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/weeklit/internal/models"
	"github.com/julianstephens/weeklit/internal/storage"
	"github.com/julianstephens/weeklit/internal/weeks"
)

var exportTime = time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC)

func sampleSnapshot(t *testing.T) storage.Snapshot {
	t.Helper()
	week, days, err := weeks.GenerateFrom(1, 1, "2024-01-15")
	if err != nil {
		t.Fatal(err)
	}
	week.CustomName = "Kickoff"
	return storage.Snapshot{
		Weeks: []models.Week{week},
		Days:  days,
		Tasks: []models.Task{
			{ID: 1, Name: "Plan", Status: models.StatusDone, Category: "work", DayID: 1, Date: "2024-01-15",
				History: []models.HistoryEntry{{Action: models.ActionCreated, Status: models.StatusTodo, Timestamp: "2024-01-15T09:00:00Z"}}},
			{ID: 2, Name: "Orphan, with comma", Status: models.StatusTodo, DayID: 99, Date: "2024-01-16"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"csv", FormatCSV, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
			}
		})
	}

	if f, err := FormatFromPath("/tmp/out.csv"); err != nil || f != FormatCSV {
		t.Errorf("FormatFromPath(out.csv) = %q, %v", f, err)
	}
	if _, err := FormatFromPath("/tmp/out"); err == nil {
		t.Error("FormatFromPath without extension succeeded")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, sampleSnapshot(t), exportTime); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	var doc document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.ExportedAt != "2024-01-20T12:00:00Z" {
		t.Errorf("exported_at = %q", doc.ExportedAt)
	}
	if len(doc.Weeks) != 1 || len(doc.Weeks[0].Days) != 7 {
		t.Fatalf("unexpected shape: %+v", doc.Weeks)
	}
	monday := doc.Weeks[0].Days[0]
	if len(monday.Tasks) != 1 || monday.Tasks[0].Name != "Plan" {
		t.Errorf("monday tasks = %+v", monday.Tasks)
	}
	if doc.Weeks[0].Days[1].Tasks == nil {
		t.Error("empty day tasks encoded as null")
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, sampleSnapshot(t), exportTime); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	var doc document
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if doc.Weeks[0].CustomName != "Kickoff" || doc.Weeks[0].StartDate != "2024-01-15" {
		t.Errorf("week = %+v", doc.Weeks[0])
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatCSV, sampleSnapshot(t), exportTime); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}

	want := []string{"1", "Kickoff", "1", "MON", "2024-01-15", "Plan", "work", "done", "1"}
	for i, v := range want {
		if records[1][i] != v {
			t.Errorf("row 1 column %s = %q, want %q", csvHeader[i], records[1][i], v)
		}
	}
	if records[2][1] != "" || records[2][5] != "Orphan, with comma" {
		t.Errorf("orphan row = %v", records[2])
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, Format("xml"), storage.Snapshot{}, exportTime); err == nil {
		t.Error("Write() with unknown format succeeded")
	}
}
