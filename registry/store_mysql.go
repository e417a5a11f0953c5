package registry

import (
	"context"
	"database/sql"
	"fmt"

	"blockpass-backend/model"
	"blockpass-backend/storage"
)

const (
	eventTable        = "Event"
	registrationTable = "Registration"
)

// MySQLStore persists registry state. Event ids come from the table's
// AUTO_INCREMENT counter, which starts at 1 and never reuses an id.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return storage.WithTx(ctx, s.db, fn)
}

func (s *MySQLStore) InsertEvent(ctx context.Context, ev *model.Event) (uint64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (title, event_date, location, ticket_price, max_tickets, tickets_sold, active, host, issuer_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`, eventTable)

	stmt, err := storage.Conn(ctx, s.db).PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("insertEvent: error preparing query: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		ev.Details.Title,
		ev.Details.Date,
		ev.Details.Location,
		ev.Details.TicketPrice,
		ev.Details.MaxTickets,
		ev.TicketsSold,
		ev.Active,
		ev.Host,
		ev.IssuerID,
	)
	if err != nil {
		return 0, fmt.Errorf("insertEvent: unable to insert record in %s: %w", eventTable, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insertEvent: unable to get last insert id: %w", err)
	}

	ev.EventID = uint64(id)
	return ev.EventID, nil
}

func (s *MySQLStore) GetEvent(ctx context.Context, eventID uint64) (*model.Event, error) {
	return s.getEvent(ctx, eventID, false)
}

func (s *MySQLStore) GetEventForUpdate(ctx context.Context, eventID uint64) (*model.Event, error) {
	return s.getEvent(ctx, eventID, true)
}

func (s *MySQLStore) getEvent(ctx context.Context, eventID uint64, forUpdate bool) (*model.Event, error) {
	query := fmt.Sprintf(`SELECT event_id, title, event_date, location, ticket_price, max_tickets, tickets_sold, active, host, issuer_id
		FROM %s WHERE event_id = ?`, eventTable)
	if forUpdate {
		query += " FOR UPDATE"
	}

	var ev model.Event
	err := storage.Conn(ctx, s.db).QueryRowContext(ctx, query, eventID).Scan(
		&ev.EventID,
		&ev.Details.Title,
		&ev.Details.Date,
		&ev.Details.Location,
		&ev.Details.TicketPrice,
		&ev.Details.MaxTickets,
		&ev.TicketsSold,
		&ev.Active,
		&ev.Host,
		&ev.IssuerID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getEvent: error scanning row: %w", err)
	}

	return &ev, nil
}

func (s *MySQLStore) InsertRegistration(ctx context.Context, eventID uint64, attendee string, tokenID uint64) error {
	query := fmt.Sprintf(`INSERT INTO %s (event_id, attendee, token_id) VALUES (?, ?, ?);`, registrationTable)

	stmt, err := storage.Conn(ctx, s.db).PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("insertRegistration: error preparing query: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, eventID, attendee, tokenID)
	if err != nil {
		return fmt.Errorf("insertRegistration: unable to insert record in %s: %w", registrationTable, err)
	}

	return nil
}

func (s *MySQLStore) SetTicketsSold(ctx context.Context, eventID, sold uint64) error {
	query := fmt.Sprintf(`UPDATE %s SET tickets_sold = ? WHERE event_id = ?;`, eventTable)

	result, err := storage.Conn(ctx, s.db).ExecContext(ctx, query, sold, eventID)
	if err != nil {
		return fmt.Errorf("setTicketsSold: unable to update record in %s: %w", eventTable, err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("setTicketsSold: unable to get affected rows: %w", err)
	}
	if updated == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (s *MySQLStore) SetInactive(ctx context.Context, eventID uint64) error {
	query := fmt.Sprintf(`UPDATE %s SET active = false WHERE event_id = ?;`, eventTable)

	result, err := storage.Conn(ctx, s.db).ExecContext(ctx, query, eventID)
	if err != nil {
		return fmt.Errorf("setInactive: unable to update record in %s: %w", eventTable, err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("setInactive: unable to get affected rows: %w", err)
	}
	if updated == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (s *MySQLStore) Attendees(ctx context.Context, eventID uint64) ([]string, error) {
	query := fmt.Sprintf(`SELECT attendee FROM %s WHERE event_id = ? ORDER BY registration_id;`, registrationTable)

	rows, err := storage.Conn(ctx, s.db).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("attendees: error executing query: %w", err)
	}
	defer rows.Close()

	var attendees []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("attendees: error scanning row: %w", err)
		}
		attendees = append(attendees, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("attendees: error iterating rows: %w", err)
	}

	return attendees, nil
}

func (s *MySQLStore) RegisteredEvents(ctx context.Context, caller string) ([]uint64, error) {
	query := fmt.Sprintf(`SELECT event_id FROM %s WHERE attendee = ? ORDER BY registration_id;`, registrationTable)

	rows, err := storage.Conn(ctx, s.db).QueryContext(ctx, query, caller)
	if err != nil {
		return nil, fmt.Errorf("registeredEvents: error executing query: %w", err)
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("registeredEvents: error scanning row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("registeredEvents: error iterating rows: %w", err)
	}

	return ids, nil
}
