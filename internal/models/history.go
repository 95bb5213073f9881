package models

import (
	"bytes"
	"encoding/json"
)

type HistoryAction string

const (
	ActionCreated       HistoryAction = "created"
	ActionStatusChanged HistoryAction = "status_changed"
	ActionUpdated       HistoryAction = "updated"
)

// FieldChange records the old and new value of one field with the field's
// own type: strings for name, category and date, int for dayId.
type FieldChange struct {
	Old any `json:"old" yaml:"old"`
	New any `json:"new" yaml:"new"`
}

// UnmarshalJSON keeps whole numbers as int so a decoded change compares
// equal to the one that was recorded.
func (c *FieldChange) UnmarshalJSON(data []byte) error {
	var raw struct {
		Old any `json:"old"`
		New any `json:"new"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	c.Old = fromJSONNumber(raw.Old)
	c.New = fromJSONNumber(raw.New)
	return nil
}

func fromJSONNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return int(i)
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// HistoryEntry is one immutable record on a task's change log. Which fields
// are set depends on Action:
//
//	created         Status, Timestamp, User
//	status_changed  Status, PreviousStatus, Timestamp
//	updated         Changes, Timestamp
type HistoryEntry struct {
	Action         HistoryAction          `json:"action" yaml:"action"`
	Status         TaskStatus             `json:"status,omitempty" yaml:"status,omitempty"`
	PreviousStatus TaskStatus             `json:"previousStatus,omitempty" yaml:"previousStatus,omitempty"`
	Changes        map[string]FieldChange `json:"changes,omitempty" yaml:"changes,omitempty"`
	Timestamp      string                 `json:"timestamp" yaml:"timestamp"` // RFC3339
	User           string                 `json:"user,omitempty" yaml:"user,omitempty"`
}
