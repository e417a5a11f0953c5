package issuer

import (
	"context"
	"sync"

	"blockpass-backend/model"
)

// MemoryStore keeps issuer state in process memory. It backs tests and local
// runs with the "memory" database driver.
type MemoryStore struct {
	mu      sync.Mutex
	nextID  uint64
	issuers map[uint64]model.Issuer
	next    map[uint64]uint64
	tickets map[uint64]map[uint64]model.Ticket
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:  1,
		issuers: make(map[uint64]model.Issuer),
		next:    make(map[uint64]uint64),
		tickets: make(map[uint64]map[uint64]model.Ticket),
	}
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *MemoryStore) InsertIssuer(ctx context.Context, iss *model.Issuer) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	iss.IssuerID = s.nextID
	s.nextID++
	s.issuers[iss.IssuerID] = *iss
	s.next[iss.IssuerID] = 1
	s.tickets[iss.IssuerID] = make(map[uint64]model.Ticket)
	return iss.IssuerID, nil
}

func (s *MemoryStore) NextTokenID(ctx context.Context, issuerID uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.issuers[issuerID]; !ok {
		return 0, ErrIssuerNotFound
	}
	id := s.next[issuerID]
	s.next[issuerID] = id + 1
	return id, nil
}

func (s *MemoryStore) InsertTicket(ctx context.Context, t *model.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tickets[t.IssuerID][t.TokenID] = *t
	return nil
}

func (s *MemoryStore) GetTicket(ctx context.Context, issuerID, tokenID uint64) (*model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[issuerID][tokenID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}
