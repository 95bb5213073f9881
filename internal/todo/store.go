// Package todo owns the in-memory weeks, days and tasks and keeps them
// persisted through a storage.Adapter after every change.
package todo

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/julianstephens/weeklit/internal/constants"
	"github.com/julianstephens/weeklit/internal/logger"
	"github.com/julianstephens/weeklit/internal/models"
	"github.com/julianstephens/weeklit/internal/storage"
	"github.com/julianstephens/weeklit/internal/utils"
	"github.com/julianstephens/weeklit/internal/weeks"
)

// NavOutcome tells callers which branch a navigation took.
type NavOutcome int

const (
	// NavExisting moved the pointer to a week that was already materialized.
	NavExisting NavOutcome = iota
	// NavCreated generated a new week and moved the pointer to it.
	NavCreated
	// NavFloor refused to go before week 1; the pointer did not move.
	NavFloor
	// NavNotFound means the reference week id is unknown; nothing changed.
	NavNotFound
)

func (o NavOutcome) String() string {
	switch o {
	case NavExisting:
		return "existing"
	case NavCreated:
		return "created"
	case NavFloor:
		return "floor"
	default:
		return "not found"
	}
}

// NavResult is the week the pointer ends on and how it got there.
type NavResult struct {
	Week    models.Week
	Outcome NavOutcome
}

// maxDateSteps bounds GoToDate so a typo in the year cannot generate
// thousands of weeks.
const maxDateSteps = 53 * 10

type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithUser sets the name recorded on created history entries.
func WithUser(user string) Option {
	return func(s *Store) { s.user = user }
}

// WithLocation sets the timezone used to decide what "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// Store is safe for concurrent use. Every method holds the lock for its
// whole duration, persistence included.
type Store struct {
	mu      sync.Mutex
	persist *storage.Adapter

	weeks   []models.Week
	days    []models.Day
	tasks   []models.Task
	current int

	now  func() time.Time
	user string
	loc  *time.Location

	// detached is set when stored state could not be read; saves are
	// skipped so the durable copy is not replaced.
	detached bool
}

func New(p storage.Provider, opts ...Option) *Store {
	s := &Store{
		persist: storage.NewAdapter(p),
		now:     time.Now,
		user:    constants.DefaultUser,
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) today() time.Time {
	return s.now().In(s.loc)
}

// Initialize loads persisted state. When there is none it generates the
// week containing today as week 1 and saves it. When the provider fails to
// read, the generated week is kept in memory only, nothing is written back
// until a later Initialize succeeds, and the read error is returned.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok, err := s.persist.Load()
	s.detached = err != nil
	if ok {
		s.weeks = snap.Weeks
		s.days = snap.Days
		s.tasks = snap.Tasks
		s.current = snap.CurrentWeekIndex
		logger.Debug("Loaded state", "weeks", len(s.weeks), "tasks", len(s.tasks))
		return nil
	}

	week, days := weeks.Containing(1, 1, s.today())
	s.weeks = []models.Week{week}
	s.days = days
	s.tasks = nil
	s.current = 0
	if err != nil {
		logger.Error("Failed to read stored state, changes will not be saved", "error", err)
		return fmt.Errorf("failed to load stored state: %w", err)
	}
	logger.Debug("Generated first week", "start", week.StartDate)
	s.save()
	return nil
}

func (s *Store) save() {
	if s.detached {
		logger.Warn("Skipping save, stored state was not loaded")
		return
	}
	// Failures are logged by the adapter; in-memory state stays authoritative.
	_ = s.persist.Save(storage.Snapshot{
		Weeks:            s.weeks,
		Days:             s.days,
		Tasks:            s.tasks,
		CurrentWeekIndex: s.current,
	})
}

// reference returns the index of weekID, or of the current week when weekID is 0.
func (s *Store) reference(weekID int) (int, bool) {
	if weekID == 0 {
		if s.current < 0 || s.current >= len(s.weeks) {
			return 0, false
		}
		return s.current, true
	}
	return s.weekIndex(weekID)
}

func (s *Store) weekIndex(weekID int) (int, bool) {
	for i, w := range s.weeks {
		if w.ID == weekID {
			return i, true
		}
	}
	return 0, false
}

func (s *Store) weekIndexByStart(start string) (int, bool) {
	for i, w := range s.weeks {
		if w.StartDate == start {
			return i, true
		}
	}
	return 0, false
}

func (s *Store) nextWeekID() int {
	maxID := 0
	for _, w := range s.weeks {
		maxID = max(maxID, w.ID)
	}
	return maxID + 1
}

// GoToNextWeek moves to the week after fromWeekID (0 means the current
// week), generating it when it does not exist yet.
func (s *Store) GoToNextWeek(fromWeekID int) NavResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.step(fromWeekID, 1)
}

// GoToPreviousWeek moves to the week before fromWeekID (0 means the
// current week). Week 1 is the floor.
func (s *Store) GoToPreviousWeek(fromWeekID int) NavResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.step(fromWeekID, -1)
}

// step navigates one week in direction dir (+1 or -1).
func (s *Store) step(fromWeekID, dir int) NavResult {
	ref, ok := s.reference(fromWeekID)
	if !ok {
		return NavResult{Outcome: NavNotFound}
	}
	refWeek := s.weeks[ref]

	if dir < 0 && refWeek.WeekNumber <= 1 {
		return NavResult{Week: refWeek, Outcome: NavFloor}
	}

	start, err := utils.AddDays(refWeek.StartDate, 7*dir)
	if err != nil {
		logger.Error("Stored week has invalid start date", "week", refWeek.ID, "error", err)
		return NavResult{Week: refWeek, Outcome: NavNotFound}
	}

	if idx, ok := s.weekIndexByStart(start); ok {
		s.current = idx
		s.save()
		return NavResult{Week: s.weeks[idx], Outcome: NavExisting}
	}

	week, days, err := weeks.GenerateFrom(s.nextWeekID(), refWeek.WeekNumber+dir, start)
	if err != nil {
		logger.Error("Failed to generate week", "start", start, "error", err)
		return NavResult{Week: refWeek, Outcome: NavNotFound}
	}
	s.insertWeek(week, days)
	logger.Debug("Materialized week", "id", week.ID, "number", week.WeekNumber, "start", week.StartDate)
	s.save()

	return NavResult{Week: week, Outcome: NavCreated}
}

// insertWeek places week and its days in start date order and points the
// current index at the new week.
func (s *Store) insertWeek(week models.Week, days []models.Day) {
	wi := len(s.weeks)
	for i, w := range s.weeks {
		if w.StartDate > week.StartDate {
			wi = i
			break
		}
	}
	s.weeks = slices.Insert(s.weeks, wi, week)

	di := len(s.days)
	for i, d := range s.days {
		if d.FullDate > week.StartDate {
			di = i
			break
		}
	}
	s.days = slices.Insert(s.days, di, days...)

	s.current, _ = s.weekIndex(week.ID)
}

// GoToDate steps week by week until the week containing date is current.
// Intermediate weeks are materialized so week numbers stay contiguous.
// Dates before week 1 stop at the floor.
func (s *Store) GoToDate(date time.Time) NavResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := utils.ISODate(utils.StartOfWeek(date.In(s.loc)))

	ref, ok := s.reference(0)
	if !ok {
		return NavResult{Outcome: NavNotFound}
	}
	result := NavResult{Week: s.weeks[ref], Outcome: NavExisting}

	for range maxDateSteps {
		cur := s.weeks[s.current]
		if cur.StartDate == target {
			return result
		}

		dir := 1
		if target < cur.StartDate {
			dir = -1
		}

		r := s.step(0, dir)
		switch r.Outcome {
		case NavFloor, NavNotFound:
			return r
		case NavCreated:
			result.Outcome = NavCreated
		}
		result.Week = r.Week
	}

	logger.Warn("Stopped navigating before reaching date", "target", target, "steps", maxDateSteps)
	return result
}

// GoToToday is GoToDate with the store's clock.
func (s *Store) GoToToday() NavResult {
	return s.GoToDate(s.now())
}

// UpdateWeekName sets the custom name of a week. An empty name clears it.
// It reports false when the week does not exist.
func (s *Store) UpdateWeekName(weekID int, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.weekIndex(weekID)
	if !ok {
		return false
	}
	s.weeks[idx].CustomName = name
	s.save()
	return true
}
