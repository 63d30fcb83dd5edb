// Package store provides SQLite storage for reservations.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/rezcal/rezcal/internal/calendar"
	"github.com/rezcal/rezcal/internal/interval"
)

// ErrSlotConflict is returned when a reservation overlaps an existing one
// on the same resource.
var ErrSlotConflict = errors.New("time slot conflict")

// ErrEmptyTitle is returned when a reservation has no title.
var ErrEmptyTitle = errors.New("reservation title cannot be empty")

// SQLite implements calendar.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateItem adds a new reservation.
// Returns ErrSlotConflict if it overlaps an existing reservation on the
// same resource. Reservations without a resource are never checked.
// On success the assigned row id is stored under item.Data["id"].
func (s *SQLite) CreateItem(ctx context.Context, item *calendar.CalendarItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return ErrEmptyTitle
	}

	if rid := item.ResourceID(); rid != "" {
		if err := s.checkOverlap(ctx, s.db, rid, item.Slot, 0); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO reservations (
			title, owner_name, owner_email, resource_id, resource_name,
			start_at, end_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var resourceName string
	if item.Resource != nil {
		resourceName = item.Resource.Name
	}

	result, err := s.db.ExecContext(ctx, query,
		item.Title,
		item.Owner.Name,
		item.Owner.Email,
		item.ResourceID(),
		resourceName,
		item.Slot.Start.UTC().Format(time.RFC3339),
		item.Slot.End.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting reservation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	setItemID(item, id)

	return nil
}

// CreateItems adds multiple reservations in a single transaction.
// Returns ErrSlotConflict if any reservation overlaps an existing one or
// another reservation in the batch on the same resource.
func (s *SQLite) CreateItems(ctx context.Context, items []*calendar.CalendarItem) error {
	if len(items) == 0 {
		return nil
	}

	for _, item := range items {
		if strings.TrimSpace(item.Title) == "" {
			return ErrEmptyTitle
		}
	}

	// Check for overlaps between the new reservations themselves
	if err := checkBatchOverlap(items); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Check for overlaps with existing reservations
	for _, item := range items {
		if rid := item.ResourceID(); rid != "" {
			if err := s.checkOverlap(ctx, tx, rid, item.Slot, 0); err != nil {
				return err
			}
		}
	}

	query := `
		INSERT INTO reservations (
			title, owner_name, owner_email, resource_id, resource_name,
			start_at, end_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, item := range items {
		var resourceName string
		if item.Resource != nil {
			resourceName = item.Resource.Name
		}
		result, err := stmt.ExecContext(ctx,
			item.Title,
			item.Owner.Name,
			item.Owner.Email,
			item.ResourceID(),
			resourceName,
			item.Slot.Start.UTC().Format(time.RFC3339),
			item.Slot.End.UTC().Format(time.RFC3339),
			now,
		)
		if err != nil {
			return fmt.Errorf("inserting reservation %q: %w", item.Title, err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting last insert id: %w", err)
		}
		setItemID(item, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// ListItems returns all reservations overlapping the given interval,
// ordered by start time.
func (s *SQLite) ListItems(ctx context.Context, within interval.Interval) ([]*calendar.CalendarItem, error) {
	query := `
		SELECT id, title, owner_name, owner_email, resource_id, resource_name, start_at, end_at
		FROM reservations
		WHERE start_at < ? AND end_at > ?
		ORDER BY start_at, id
	`

	rows, err := s.db.QueryContext(ctx, query,
		within.End.UTC().Format(time.RFC3339),
		within.Start.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("querying reservations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []*calendar.CalendarItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reservations: %w", err)
	}

	return items, nil
}

// GetItem retrieves a reservation by id. Returns nil when not found.
func (s *SQLite) GetItem(ctx context.Context, id int64) (*calendar.CalendarItem, error) {
	query := `
		SELECT id, title, owner_name, owner_email, resource_id, resource_name, start_at, end_at
		FROM reservations
		WHERE id = ?
	`

	row := s.db.QueryRowContext(ctx, query, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a reservation by id.
func (s *SQLite) DeleteItem(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting reservation: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("reservation %d not found", id)
	}

	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// checkOverlap reports ErrSlotConflict when the slot overlaps a stored
// reservation on the given resource. excludeID skips a row (0 skips none).
// Two ranges overlap if: start1 < end2 AND start2 < end1.
func (s *SQLite) checkOverlap(ctx context.Context, q querier, resourceID string, slot interval.Interval, excludeID int64) error {
	query := `
		SELECT id, title, start_at, end_at
		FROM reservations
		WHERE resource_id = ?
		  AND id != ?
		  AND start_at < ?
		  AND end_at > ?
		LIMIT 1
	`

	var (
		id         int64
		title      string
		existStart string
		existEnd   string
	)

	err := q.QueryRowContext(ctx, query,
		resourceID,
		excludeID,
		slot.End.UTC().Format(time.RFC3339),
		slot.Start.UTC().Format(time.RFC3339),
	).Scan(&id, &title, &existStart, &existEnd)

	if errors.Is(err, sql.ErrNoRows) {
		return nil // No overlap
	}
	if err != nil {
		return fmt.Errorf("checking overlap: %w", err)
	}

	return fmt.Errorf("%w: conflicts with #%d %q (%s - %s)",
		ErrSlotConflict, id, title, existStart, existEnd)
}

// checkBatchOverlap checks for overlaps between reservations in the same batch.
func checkBatchOverlap(items []*calendar.CalendarItem) error {
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			a, b := items[i], items[j]

			rid := a.ResourceID()
			if rid == "" || rid != b.ResourceID() {
				continue
			}

			if a.Slot.Overlaps(b.Slot) {
				return fmt.Errorf("%w: %q (%s) conflicts with %q (%s)",
					ErrSlotConflict, a.Title, a.Slot, b.Title, b.Slot)
			}
		}
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*calendar.CalendarItem, error) {
	var (
		id           int64
		title        string
		ownerName    string
		ownerEmail   string
		resourceID   string
		resourceName string
		startAt      string
		endAt        string
	)

	if err := row.Scan(&id, &title, &ownerName, &ownerEmail, &resourceID, &resourceName, &startAt, &endAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning reservation: %w", err)
	}

	start, err := parseTime(startAt)
	if err != nil {
		return nil, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := parseTime(endAt)
	if err != nil {
		return nil, fmt.Errorf("parsing end time: %w", err)
	}

	slot, err := interval.New(start, end)
	if err != nil {
		return nil, fmt.Errorf("reservation %d: %w", id, err)
	}

	item := &calendar.CalendarItem{
		Slot:  slot,
		Title: title,
		Owner: calendar.EventOwner{Name: ownerName, Email: ownerEmail},
	}
	if resourceID != "" {
		item.Resource = &calendar.Resource{ID: resourceID, Name: resourceName}
	}
	setItemID(item, id)

	return item, nil
}

// parseTime parses a timestamp in the formats SQLite might return.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}

func setItemID(item *calendar.CalendarItem, id int64) {
	if item.Data == nil {
		item.Data = make(map[string]any)
	}
	item.Data["id"] = id
}

// ItemID returns the stored row id of an item, or 0 when it has none.
func ItemID(item *calendar.CalendarItem) int64 {
	if item == nil || item.Data == nil {
		return 0
	}
	if id, ok := item.Data["id"].(int64); ok {
		return id
	}
	return 0
}
