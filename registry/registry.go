package registry

import (
	"context"
	"errors"
	"fmt"

	"blockpass-backend/cache"
	"blockpass-backend/logger"
	"blockpass-backend/model"
)

// Rejection reasons for write operations. They stay inside the package; at
// the operation boundary a rejected write is a plain false result.
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrEventInactive       = errors.New("event inactive")
	ErrSoldOut             = errors.New("event sold out")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrNotHost             = errors.New("caller is not the event host")
	ErrMintFailed          = errors.New("issuer rejected mint")
)

// Minter is the issuer operation the registry calls during a purchase. The
// registry never touches issuer storage directly.
type Minter interface {
	MintTicket(ctx context.Context, issuerID uint64, recipient, tokenURI string) (uint64, error)
}

// Store is the persistence boundary of the event registry. One Registration
// row is written per successful purchase; ordered by insertion it is both the
// attendee roll of an event and the per-caller registry of events.
type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	InsertEvent(ctx context.Context, ev *model.Event) (uint64, error)
	GetEvent(ctx context.Context, eventID uint64) (*model.Event, error)
	// GetEventForUpdate locks the event row for the rest of the transaction.
	GetEventForUpdate(ctx context.Context, eventID uint64) (*model.Event, error)
	InsertRegistration(ctx context.Context, eventID uint64, attendee string, tokenID uint64) error
	SetTicketsSold(ctx context.Context, eventID, sold uint64) error
	SetInactive(ctx context.Context, eventID uint64) error
	Attendees(ctx context.Context, eventID uint64) ([]string, error)
	RegisteredEvents(ctx context.Context, caller string) ([]uint64, error)
}

type Service struct {
	store  Store
	minter Minter
	cache  *cache.Events
}

// NewService returns the event registry. cache may be nil.
func NewService(store Store, minter Minter, events *cache.Events) *Service {
	return &Service{store: store, minter: minter, cache: events}
}

// CreateEvent stores a new active event hosted by the caller and returns its
// id. Details are stored as given; no validation is applied to them.
func (s *Service) CreateEvent(ctx context.Context, details model.EventDetails, issuerID uint64, host string) (uint64, error) {
	ev := model.Event{
		Details:  details,
		IssuerID: issuerID,
		Active:   true,
		Host:     host,
	}

	id, err := s.store.InsertEvent(ctx, &ev)
	if err != nil {
		return 0, fmt.Errorf("createEvent: error inserting event: %w", err)
	}
	return id, nil
}

// PurchaseTicket validates the event, mints a token through the paired
// issuer and records attendance, all inside one transaction. A false result
// leaves no registry state behind; the attached payment is settled by the
// environment and is not reversed here.
func (s *Service) PurchaseTicket(ctx context.Context, eventID uint64, tokenURI, caller string, payment model.Amount) (bool, error) {
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		ev, err := s.store.GetEventForUpdate(ctx, eventID)
		if err != nil {
			return fmt.Errorf("purchaseTicket: error fetching event %d: %w", eventID, err)
		}
		if ev == nil {
			return ErrEventNotFound
		}
		if !ev.Active {
			return ErrEventInactive
		}
		if ev.TicketsSold >= ev.Details.MaxTickets {
			return ErrSoldOut
		}
		if payment.Cmp(ev.Details.TicketPrice) < 0 {
			return ErrInsufficientPayment
		}

		tokenID, err := s.minter.MintTicket(ctx, ev.IssuerID, caller, tokenURI)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMintFailed, err)
		}

		if err := s.store.InsertRegistration(ctx, eventID, caller, tokenID); err != nil {
			return fmt.Errorf("purchaseTicket: error inserting registration: %w", err)
		}
		if err := s.store.SetTicketsSold(ctx, eventID, ev.TicketsSold+1); err != nil {
			return fmt.Errorf("purchaseTicket: error updating sold count: %w", err)
		}
		return nil
	})
	if err != nil {
		if rejected(err) {
			logger.Infof(ctx, "purchaseTicket: rejected for event %d: %v", eventID, err)
			return false, nil
		}
		return false, err
	}

	s.cache.Invalidate(ctx, eventID)
	return true, nil
}

// DeactivateEvent flips the event inactive. Only the host may do this; doing
// it again once inactive still succeeds.
func (s *Service) DeactivateEvent(ctx context.Context, eventID uint64, caller string) (bool, error) {
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		ev, err := s.store.GetEventForUpdate(ctx, eventID)
		if err != nil {
			return fmt.Errorf("deactivateEvent: error fetching event %d: %w", eventID, err)
		}
		if ev == nil {
			return ErrEventNotFound
		}
		if ev.Host != caller {
			return ErrNotHost
		}
		if !ev.Active {
			return nil
		}
		if err := s.store.SetInactive(ctx, eventID); err != nil {
			return fmt.Errorf("deactivateEvent: error updating event %d: %w", eventID, err)
		}
		return nil
	})
	if err != nil {
		if rejected(err) {
			logger.Infof(ctx, "deactivateEvent: rejected for event %d: %v", eventID, err)
			return false, nil
		}
		return false, err
	}

	s.cache.Invalidate(ctx, eventID)
	return true, nil
}

// Event returns the full event record, going through the read cache.
func (s *Service) Event(ctx context.Context, eventID uint64) (*model.Event, bool, error) {
	if ev, ok := s.cache.Get(ctx, eventID); ok {
		return ev, true, nil
	}

	ev, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, false, fmt.Errorf("event: error fetching event %d: %w", eventID, err)
	}
	if ev == nil {
		return nil, false, nil
	}

	s.cache.Set(ctx, ev)
	return ev, true, nil
}

func (s *Service) EventDetails(ctx context.Context, eventID uint64) (*model.EventDetails, bool, error) {
	ev, ok, err := s.Event(ctx, eventID)
	if err != nil || !ok {
		return nil, false, err
	}
	details := ev.Details
	return &details, true, nil
}

// Attendees returns the ordered attendee roll, or ok=false for an unknown
// event. An event with no sales yields an empty roll.
func (s *Service) Attendees(ctx context.Context, eventID uint64) ([]string, bool, error) {
	_, ok, err := s.Event(ctx, eventID)
	if err != nil || !ok {
		return nil, false, err
	}

	attendees, err := s.store.Attendees(ctx, eventID)
	if err != nil {
		return nil, false, fmt.Errorf("attendees: error fetching attendees of event %d: %w", eventID, err)
	}
	if attendees == nil {
		attendees = []string{}
	}
	return attendees, true, nil
}

// TicketIssuer returns the id of the issuer instance paired with the event.
func (s *Service) TicketIssuer(ctx context.Context, eventID uint64) (uint64, bool, error) {
	ev, ok, err := s.Event(ctx, eventID)
	if err != nil || !ok {
		return 0, false, err
	}
	return ev.IssuerID, true, nil
}

// RegisteredEvents returns the ordered event ids the caller purchased into,
// or ok=false when the caller never purchased anything.
func (s *Service) RegisteredEvents(ctx context.Context, caller string) ([]uint64, bool, error) {
	ids, err := s.store.RegisteredEvents(ctx, caller)
	if err != nil {
		return nil, false, fmt.Errorf("registeredEvents: error fetching events of %s: %w", caller, err)
	}
	if len(ids) == 0 {
		return nil, false, nil
	}
	return ids, true, nil
}

func rejected(err error) bool {
	for _, sentinel := range []error{
		ErrEventNotFound,
		ErrEventInactive,
		ErrSoldOut,
		ErrInsufficientPayment,
		ErrNotHost,
		ErrMintFailed,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
