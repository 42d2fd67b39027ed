// README: Availability store backed by PostgreSQL.
package availability

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) ListActiveRules(ctx context.Context) ([]Rule, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, weekday, start_minutes, end_minutes, slot_minutes, capacity, active
        FROM availability_rules
        WHERE active
        ORDER BY weekday, start_minutes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []Rule
	for rows.Next() {
		var r Rule
		if err := rows.Scan(&r.ID, &r.Weekday, &r.StartMinutes, &r.EndMinutes,
			&r.SlotMinutes, &r.Capacity, &r.Active); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func (s *Store) ListExceptions(ctx context.Context, from, to time.Time) ([]Exception, error) {
	rows, err := s.db.Query(ctx, `
        SELECT date, closed, override_capacity, COALESCE(note, '')
        FROM availability_exceptions
        WHERE date >= $1 AND date < $2
        ORDER BY date`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var excs []Exception
	for rows.Next() {
		var e Exception
		var override sql.NullInt64
		if err := rows.Scan(&e.Date, &e.Closed, &override, &e.Note); err != nil {
			return nil, err
		}
		if override.Valid {
			v := int(override.Int64)
			e.OverrideCapacity = &v
		}
		excs = append(excs, e)
	}
	return excs, rows.Err()
}

// ListBookings returns the non-cancelled booking intervals overlapping the
// window.
func (s *Store) ListBookings(ctx context.Context, from, to time.Time) ([]Booking, error) {
	rows, err := s.db.Query(ctx, `
        SELECT slot_start, slot_end
        FROM orders
        WHERE slot_start < $2 AND slot_end > $1 AND status <> 'CANCELLED'
        ORDER BY slot_start`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.Start, &b.End); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
