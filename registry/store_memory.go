package registry

import (
	"context"
	"sync"

	"blockpass-backend/model"
)

type registration struct {
	eventID  uint64
	attendee string
	tokenID  uint64
}

// MemoryStore keeps registry state in process memory. It backs tests and
// local runs with the "memory" database driver.
type MemoryStore struct {
	mu            sync.Mutex
	nextID        uint64
	events        map[uint64]model.Event
	registrations []registration
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		events: make(map[uint64]model.Event),
	}
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *MemoryStore) InsertEvent(ctx context.Context, ev *model.Event) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev.EventID = s.nextID
	s.nextID++
	s.events[ev.EventID] = *ev
	return ev.EventID, nil
}

func (s *MemoryStore) GetEvent(ctx context.Context, eventID uint64) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return nil, nil
	}
	return &ev, nil
}

func (s *MemoryStore) GetEventForUpdate(ctx context.Context, eventID uint64) (*model.Event, error) {
	return s.GetEvent(ctx, eventID)
}

func (s *MemoryStore) InsertRegistration(ctx context.Context, eventID uint64, attendee string, tokenID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registrations = append(s.registrations, registration{eventID: eventID, attendee: attendee, tokenID: tokenID})
	return nil
}

func (s *MemoryStore) SetTicketsSold(ctx context.Context, eventID, sold uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	ev.TicketsSold = sold
	s.events[eventID] = ev
	return nil
}

func (s *MemoryStore) SetInactive(ctx context.Context, eventID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	ev.Active = false
	s.events[eventID] = ev
	return nil
}

func (s *MemoryStore) Attendees(ctx context.Context, eventID uint64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var attendees []string
	for _, r := range s.registrations {
		if r.eventID == eventID {
			attendees = append(attendees, r.attendee)
		}
	}
	return attendees, nil
}

func (s *MemoryStore) RegisteredEvents(ctx context.Context, caller string) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []uint64
	for _, r := range s.registrations {
		if r.attendee == caller {
			ids = append(ids, r.eventID)
		}
	}
	return ids, nil
}
