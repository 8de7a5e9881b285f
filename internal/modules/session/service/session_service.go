package service

import (
	"sort"
	"strings"
	"sync"
	"time"

	"libtrack/internal/modules/session/domain"
	"libtrack/internal/platform/clock"
	apperrors "libtrack/internal/platform/errors"
	"libtrack/internal/platform/id"
)

// SessionService owns the two in-memory collections and every rule for
// moving records between them. There is one logical writer (the
// operator), but TUI commands run on goroutines, so a mutex keeps each
// operation atomic. Every mutation either fully applies or leaves both
// collections untouched.
type SessionService struct {
	clock clock.Clock
	idGen id.Generator

	mu        sync.Mutex
	active    []domain.ActiveSession
	completed []domain.CompletedSession
}

func NewSessionService(clock clock.Clock, idGen id.Generator) *SessionService {
	return &SessionService{clock: clock, idGen: idGen}
}

// Seed replaces both collections wholesale. Used to rehydrate from the
// log mirror at startup.
func (s *SessionService) Seed(active []domain.ActiveSession, completed []domain.CompletedSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = append([]domain.ActiveSession(nil), active...)
	s.completed = append([]domain.CompletedSession(nil), completed...)
}

// TimeIn signs a student in. The trimmed name must be non-empty and not
// already active; the duplicate check is case-insensitive while the
// stored name keeps its original casing.
func (s *SessionService) TimeIn(studentName string, level int) (domain.ActiveSession, error) {
	name := strings.TrimSpace(studentName)
	if name == "" {
		return domain.ActiveSession{}, apperrors.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.active {
		if strings.EqualFold(a.StudentName, name) {
			return domain.ActiveSession{}, apperrors.ErrStudentAlreadyActive
		}
	}
	session := domain.ActiveSession{
		ID:          s.idGen.New(),
		StudentName: name,
		Level:       level,
		TimeIn:      s.clock.Now(),
	}
	s.active = append(s.active, session)
	return session, nil
}

// TimeOut closes the active session with the given id. An unknown id is
// a silent no-op so a double-clicked sign-out button cannot fail. The
// closed record is prepended: the completed collection is kept
// most-recent-first.
func (s *SessionService) TimeOut(sessionID string) (domain.CompletedSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.active {
		if a.ID != sessionID {
			continue
		}
		timeOut := s.clock.Now()
		completed := domain.CompletedSession{
			ID:          a.ID,
			StudentName: a.StudentName,
			Level:       a.Level,
			TimeIn:      a.TimeIn,
			TimeOut:     timeOut,
			Duration:    domain.Derive(a.TimeIn, timeOut),
		}
		s.completed = append([]domain.CompletedSession{completed}, s.completed...)
		s.active = append(s.active[:i], s.active[i+1:]...)
		return completed, true
	}
	return domain.CompletedSession{}, false
}

// AddCompleted inserts a manually backfilled record. Unlike TimeOut it
// re-sorts the whole collection descending by time-in, so the entry
// slots into chronological position instead of landing at the front.
func (s *SessionService) AddCompleted(studentName string, level int, timeIn, timeOut time.Time, notes string) (domain.CompletedSession, error) {
	if !timeIn.Before(timeOut) {
		return domain.CompletedSession{}, apperrors.ErrInvalidTimeRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session := domain.CompletedSession{
		ID:          s.idGen.New(),
		StudentName: strings.TrimSpace(studentName),
		Level:       level,
		TimeIn:      timeIn,
		TimeOut:     timeOut,
		Duration:    domain.Derive(timeIn, timeOut),
		Notes:       notes,
	}
	s.completed = append(s.completed, session)
	sort.SliceStable(s.completed, func(i, j int) bool {
		return s.completed[i].TimeIn.After(s.completed[j].TimeIn)
	})
	return session, nil
}

// UpdateCompleted replaces the fields of the matching record and
// recomputes its duration. An invalid time range drops the whole edit
// with the collection untouched; there is no partial apply. The
// collection is deliberately not re-sorted after an edit, so backdating
// a session leaves the descending order approximate. Known quirk of the
// ordering contract.
func (s *SessionService) UpdateCompleted(sessionID, studentName string, level int, timeIn, timeOut time.Time, notes string) error {
	if !timeIn.Before(timeOut) {
		return apperrors.ErrInvalidTimeRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.completed {
		if s.completed[i].ID != sessionID {
			continue
		}
		// Edits apply the name as typed; only time-in and backfill trim.
		s.completed[i].StudentName = studentName
		s.completed[i].Level = level
		s.completed[i].TimeIn = timeIn
		s.completed[i].TimeOut = timeOut
		s.completed[i].Notes = notes
		s.completed[i].Duration = domain.Derive(timeIn, timeOut)
		return nil
	}
	return nil
}

// DeleteCompleted removes the matching record; unknown ids are a no-op.
func (s *SessionService) DeleteCompleted(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.completed {
		if c.ID == sessionID {
			s.completed = append(s.completed[:i], s.completed[i+1:]...)
			return
		}
	}
}

// Active returns a snapshot copy of the open sessions.
func (s *SessionService) Active() []domain.ActiveSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ActiveSession(nil), s.active...)
}

// Completed returns a snapshot copy of the closed sessions,
// most-recent-first.
func (s *SessionService) Completed() []domain.CompletedSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CompletedSession(nil), s.completed...)
}
