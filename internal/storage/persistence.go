package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/julianstephens/weeklit/internal/constants"
	"github.com/julianstephens/weeklit/internal/logger"
	"github.com/julianstephens/weeklit/internal/models"
)

// Snapshot is the full todo state as persisted.
type Snapshot struct {
	Weeks            []models.Week
	Days             []models.Day
	Tasks            []models.Task
	CurrentWeekIndex int
}

// Adapter reads and writes a Snapshot through a Provider. It holds no copy
// of the state itself.
type Adapter struct {
	provider Provider
}

func NewAdapter(p Provider) *Adapter {
	return &Adapter{provider: p}
}

// Load reads the four todo keys. It reports false when nothing has been
// saved yet or when a stored value cannot be decoded; the cause is logged.
// A provider read failure is returned as an error so callers can tell it
// apart from absent data and avoid overwriting what is stored.
func (a *Adapter) Load() (Snapshot, bool, error) {
	var snap Snapshot

	ok, err := a.decode(constants.KeyWeeks, &snap.Weeks)
	if err != nil || !ok {
		return Snapshot{}, false, err
	}
	for _, d := range []struct {
		key string
		v   any
	}{
		{constants.KeyDays, &snap.Days},
		{constants.KeyTasks, &snap.Tasks},
	} {
		if ok, err := a.decode(d.key, d.v); err != nil || !ok {
			return Snapshot{}, false, err
		}
	}

	raw, err := a.provider.Get(constants.KeyCurrentWeekIndex)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return Snapshot{}, false, fmt.Errorf("failed to read %s: %w", constants.KeyCurrentWeekIndex, err)
	default:
		idx, err := strconv.Atoi(raw)
		if err != nil {
			logger.Warn("Discarding malformed stored data", "key", constants.KeyCurrentWeekIndex, "error", err)
			return Snapshot{}, false, nil
		}
		snap.CurrentWeekIndex = idx
	}

	if len(snap.Weeks) == 0 {
		return Snapshot{}, false, nil
	}
	if snap.CurrentWeekIndex < 0 || snap.CurrentWeekIndex >= len(snap.Weeks) {
		logger.Warn("Stored week index out of range, resetting", "index", snap.CurrentWeekIndex, "weeks", len(snap.Weeks))
		snap.CurrentWeekIndex = 0
	}

	return snap, true, nil
}

// decode reads key into v. A missing key leaves v empty and reports true;
// malformed data reports false.
func (a *Adapter) decode(key string, v any) (bool, error) {
	raw, err := a.provider.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		logger.Warn("Discarding malformed stored data", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// Save writes all four keys. A failing key is logged and the rest are still
// written; the combined error is returned for callers that want it.
func (a *Adapter) Save(snap Snapshot) error {
	entries, err := encode(snap)
	if err != nil {
		logger.Error("Failed to encode state", "error", err)
		return err
	}

	if bs, ok := a.provider.(BatchSetter); ok {
		if err := bs.SetMany(entries); err != nil {
			logger.Error("Failed to persist state", "error", err)
			return err
		}
		return nil
	}

	var errs []error
	for _, key := range []string{constants.KeyTasks, constants.KeyDays, constants.KeyWeeks, constants.KeyCurrentWeekIndex} {
		if err := a.provider.Set(key, entries[key]); err != nil {
			logger.Error("Failed to persist state", "key", key, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func encode(snap Snapshot) (map[string]string, error) {
	entries := make(map[string]string, 4)

	values := map[string]any{
		constants.KeyTasks: nonNil(snap.Tasks),
		constants.KeyDays:  nonNil(snap.Days),
		constants.KeyWeeks: nonNil(snap.Weeks),
	}
	for key, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		entries[key] = string(data)
	}
	entries[constants.KeyCurrentWeekIndex] = strconv.Itoa(snap.CurrentWeekIndex)

	return entries, nil
}

// nonNil makes empty collections encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
