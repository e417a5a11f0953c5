package issuer

import (
	"context"
	"errors"
	"fmt"

	"blockpass-backend/model"
)

// ErrIssuerNotFound is returned by MintTicket when the referenced issuer
// instance does not exist.
var ErrIssuerNotFound = errors.New("issuer not found")

// Store is the persistence boundary of the ticket issuer. Token state is
// owned exclusively by this component; nothing else writes these tables.
type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	InsertIssuer(ctx context.Context, iss *model.Issuer) (uint64, error)
	// NextTokenID reserves and returns the next sequential token id for the
	// issuer, starting at 1. It returns ErrIssuerNotFound for unknown ids.
	NextTokenID(ctx context.Context, issuerID uint64) (uint64, error)
	InsertTicket(ctx context.Context, t *model.Ticket) error
	GetTicket(ctx context.Context, issuerID, tokenID uint64) (*model.Ticket, error)
}

// Service mints non-transferable ticket tokens. There are no transfer, burn
// or approval operations; a token stays bound to its original recipient.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates a new issuer instance and returns its id.
func (s *Service) Register(ctx context.Context, name, symbol string) (uint64, error) {
	id, err := s.store.InsertIssuer(ctx, &model.Issuer{Name: name, Symbol: symbol})
	if err != nil {
		return 0, fmt.Errorf("register: error inserting issuer: %w", err)
	}
	return id, nil
}

// MintTicket assigns the next token id for the issuer and records the owner
// and URI. Failure is signalled by the error, never by a sentinel id; a
// returned id is always valid and strictly positive.
func (s *Service) MintTicket(ctx context.Context, issuerID uint64, recipient, tokenURI string) (uint64, error) {
	var tokenID uint64
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		id, err := s.store.NextTokenID(ctx, issuerID)
		if err != nil {
			return err
		}

		t := model.Ticket{
			IssuerID: issuerID,
			TokenID:  id,
			Owner:    recipient,
			TokenURI: tokenURI,
		}
		if err := s.store.InsertTicket(ctx, &t); err != nil {
			return fmt.Errorf("mintTicket: error inserting ticket: %w", err)
		}

		tokenID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return tokenID, nil
}

func (s *Service) OwnerOf(ctx context.Context, issuerID, tokenID uint64) (string, bool, error) {
	t, err := s.store.GetTicket(ctx, issuerID, tokenID)
	if err != nil {
		return "", false, fmt.Errorf("ownerOf: error fetching ticket: %w", err)
	}
	if t == nil {
		return "", false, nil
	}
	return t.Owner, true, nil
}

func (s *Service) TokenURI(ctx context.Context, issuerID, tokenID uint64) (string, bool, error) {
	t, err := s.store.GetTicket(ctx, issuerID, tokenID)
	if err != nil {
		return "", false, fmt.Errorf("tokenURI: error fetching ticket: %w", err)
	}
	if t == nil {
		return "", false, nil
	}
	return t.TokenURI, true, nil
}
