package issuer

import (
	"context"
	"database/sql"
	"fmt"

	"blockpass-backend/model"
	"blockpass-backend/storage"
)

const (
	issuerTable = "Ticket_Issuer"
	ticketTable = "Ticket"
)

// MySQLStore persists issuer and token state. It shares the database handle
// with the registry store so a purchase commits both sides in one
// transaction.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return storage.WithTx(ctx, s.db, fn)
}

func (s *MySQLStore) InsertIssuer(ctx context.Context, iss *model.Issuer) (uint64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (issuer_name, symbol, next_token_id) VALUES (?, ?, 1);`, issuerTable)

	stmt, err := storage.Conn(ctx, s.db).PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("insertIssuer: error preparing query: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, iss.Name, iss.Symbol)
	if err != nil {
		return 0, fmt.Errorf("insertIssuer: unable to insert record in %s: %w", issuerTable, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insertIssuer: unable to get last insert id: %w", err)
	}

	iss.IssuerID = uint64(id)
	return iss.IssuerID, nil
}

func (s *MySQLStore) NextTokenID(ctx context.Context, issuerID uint64) (uint64, error) {
	conn := storage.Conn(ctx, s.db)

	query := fmt.Sprintf(`SELECT next_token_id FROM %s WHERE issuer_id = ? FOR UPDATE;`, issuerTable)

	var next uint64
	err := conn.QueryRowContext(ctx, query, issuerID).Scan(&next)
	if err == sql.ErrNoRows {
		return 0, ErrIssuerNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("nextTokenID: error fetching counter: %w", err)
	}

	update := fmt.Sprintf(`UPDATE %s SET next_token_id = ? WHERE issuer_id = ?;`, issuerTable)
	_, err = conn.ExecContext(ctx, update, next+1, issuerID)
	if err != nil {
		return 0, fmt.Errorf("nextTokenID: error advancing counter: %w", err)
	}

	return next, nil
}

func (s *MySQLStore) InsertTicket(ctx context.Context, t *model.Ticket) error {
	query := fmt.Sprintf(`INSERT INTO %s (issuer_id, token_id, owner, token_uri) VALUES (?, ?, ?, ?);`, ticketTable)

	stmt, err := storage.Conn(ctx, s.db).PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("insertTicket: error preparing query: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, t.IssuerID, t.TokenID, t.Owner, t.TokenURI)
	if err != nil {
		return fmt.Errorf("insertTicket: unable to insert record in %s: %w", ticketTable, err)
	}

	return nil
}

func (s *MySQLStore) GetTicket(ctx context.Context, issuerID, tokenID uint64) (*model.Ticket, error) {
	query := fmt.Sprintf(`SELECT issuer_id, token_id, owner, token_uri FROM %s WHERE issuer_id = ? AND token_id = ?;`, ticketTable)

	var t model.Ticket
	err := storage.Conn(ctx, s.db).QueryRowContext(ctx, query, issuerID, tokenID).Scan(&t.IssuerID, &t.TokenID, &t.Owner, &t.TokenURI)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getTicket: error scanning row: %w", err)
	}

	return &t, nil
}
