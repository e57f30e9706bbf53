package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Slot mirrors a row of the `turnos` table: one bookable time of day for one
// weekday of the weekly template.
type Slot struct {
	ID      uint64 `json:"id"`
	Weekday string `json:"dia_semana"`
	Time    string `json:"hora_spot"`
}

// SlotRepo provides data access to the weekly slot template.
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo constructs a SlotRepo with the given DB handle.
func NewSlotRepo(db *sql.DB) *SlotRepo { return &SlotRepo{db: db} }

// Create inserts a new slot template entry and populates its generated ID.
func (r *SlotRepo) Create(ctx context.Context, s *Slot) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO turnos (dia_semana, hora_spot) VALUES (?, ?)`, s.Weekday, s.Time)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID retrieves a slot template entry. It returns ErrSlotNotFound when
// no row exists.
func (r *SlotRepo) GetByID(ctx context.Context, id uint64) (*Slot, error) {
	const q = `SELECT id, dia_semana, hora_spot FROM turnos WHERE id = ?`
	var s Slot
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Weekday, &s.Time); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListAll returns the full weekly template.
func (r *SlotRepo) ListAll(ctx context.Context) ([]Slot, error) {
	const q = `SELECT id, dia_semana, hora_spot FROM turnos ORDER BY dia_semana, hora_spot`
	return r.list(ctx, q)
}

// TimesByWeekday returns the bookable times for one weekday in ascending
// order. This is the whole of the open-slots derivation once the caller has
// turned a date into its weekday name.
func (r *SlotRepo) TimesByWeekday(ctx context.Context, weekday string) ([]string, error) {
	const q = `SELECT hora_spot FROM turnos WHERE dia_semana = ? ORDER BY hora_spot`
	rows, err := r.db.QueryContext(ctx, q, weekday)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	times := make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

// Update rewrites a slot template entry.
func (r *SlotRepo) Update(ctx context.Context, s *Slot) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE turnos SET dia_semana = ?, hora_spot = ? WHERE id = ?`, s.Weekday, s.Time, s.ID)
	if err != nil {
		return err
	}
	return mustAffect(res, ErrSlotNotFound)
}

// Delete removes a slot template entry.
func (r *SlotRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM turnos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mustAffect(res, ErrSlotNotFound)
}

func (r *SlotRepo) list(ctx context.Context, q string, args ...any) ([]Slot, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	slots := make([]Slot, 0)
	for rows.Next() {
		var s Slot
		if err := rows.Scan(&s.ID, &s.Weekday, &s.Time); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}
