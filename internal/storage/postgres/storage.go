package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/transferhub/transferhub-go/internal/model"
	"github.com/transferhub/transferhub-go/internal/storage"
	"github.com/transferhub/transferhub-go/internal/storage/postgres/migrations"
)

// Postgres unique_violation error code
const uniqueViolation = "23505"

const transferColumns = "id, guest_name, room_number, phone_number, transfer_date, passengers, pickup_location, destination, flight_number, comments, status, created_at"

// Storage is a Postgres-backed implementation of the storage interface.
// Insertion order is preserved through a BIGSERIAL sequence column; the
// username uniqueness check is enforced by a UNIQUE constraint.
type Storage struct {
	db *sql.DB
}

// New creates a new Postgres storage instance
func New(cfg Config) (*Storage, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return &Storage{db: db}, nil
}

// NewWithDB creates a Postgres storage with an existing handle (for testing)
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// RunMigrations applies the embedded schema migrations
func (s *Storage) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, s.db, ".")
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Transfer operations

func (s *Storage) InsertTransfer(ctx context.Context, t *model.Transfer) error {
	query := `INSERT INTO transfers
		(guest_name, room_number, phone_number, transfer_date, passengers, pickup_location, destination, flight_number, comments, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query,
		t.GuestName, t.RoomNumber, t.PhoneNumber, t.TransferDate, t.Passengers,
		t.PickupLocation, t.Destination, t.FlightNumber, t.Comments, t.Status,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *Storage) ListTransfers(ctx context.Context, filter storage.TransferFilter) ([]*model.Transfer, error) {
	query := "SELECT " + transferColumns + " FROM transfers"
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	query += " ORDER BY seq"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]*model.Transfer, 0)
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (s *Storage) GetTransfer(ctx context.Context, id model.TransferID) (*model.Transfer, error) {
	query := "SELECT " + transferColumns + " FROM transfers WHERE id = $1"

	t, err := scanTransfer(s.db.QueryRowContext(ctx, query, string(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrTransferNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Storage) UpdateTransfer(ctx context.Context, id model.TransferID, patch model.TransferPatch) (*model.Transfer, error) {
	set, args := patchClauses(patch)
	if len(set) == 0 {
		return s.GetTransfer(ctx, id)
	}

	args = append(args, string(id))
	query := fmt.Sprintf("UPDATE transfers SET %s WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), len(args), transferColumns)

	t, err := scanTransfer(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrTransferNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Storage) DeleteTransfer(ctx context.Context, id model.TransferID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transfers WHERE id = $1", string(id))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return model.ErrTransferNotFound
	}
	return nil
}

// User operations

func (s *Storage) InsertUser(ctx context.Context, u *model.User) error {
	query := `INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query, u.Username, u.PasswordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrUsernameTaken
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`

	u := &model.User{}
	err := s.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanTransfer(row scanner) (*model.Transfer, error) {
	t := &model.Transfer{}
	err := row.Scan(
		&t.ID, &t.GuestName, &t.RoomNumber, &t.PhoneNumber, &t.TransferDate,
		&t.Passengers, &t.PickupLocation, &t.Destination, &t.FlightNumber,
		&t.Comments, &t.Status, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// patchClauses builds SET clauses and arguments for the named patch fields
func patchClauses(patch model.TransferPatch) ([]string, []any) {
	var set []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.GuestName != nil {
		add("guest_name", *patch.GuestName)
	}
	if patch.RoomNumber != nil {
		add("room_number", *patch.RoomNumber)
	}
	if patch.PhoneNumber != nil {
		add("phone_number", *patch.PhoneNumber)
	}
	if patch.TransferDate != nil {
		add("transfer_date", *patch.TransferDate)
	}
	if patch.Passengers != nil {
		add("passengers", *patch.Passengers)
	}
	if patch.PickupLocation != nil {
		add("pickup_location", *patch.PickupLocation)
	}
	if patch.Destination != nil {
		add("destination", *patch.Destination)
	}
	if patch.FlightNumber != nil {
		add("flight_number", *patch.FlightNumber)
	}
	if patch.Comments != nil {
		add("comments", *patch.Comments)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	return set, args
}
