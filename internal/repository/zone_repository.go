package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Zone mirrors a row of the `zonas` table.
type Zone struct {
	ID   uint64 `json:"id"`
	Name string `json:"nombre"`
}

// ZoneRepo provides data access to zones. Zones are small static reference
// data, so every method is a single round trip.
type ZoneRepo struct {
	db *sql.DB
}

// NewZoneRepo constructs a ZoneRepo with the given DB handle.
func NewZoneRepo(db *sql.DB) *ZoneRepo { return &ZoneRepo{db: db} }

// Create inserts a new zone and populates its generated ID.
func (r *ZoneRepo) Create(ctx context.Context, z *Zone) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO zonas (nombre) VALUES (?)`, z.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	z.ID = uint64(id)
	return nil
}

// GetByID retrieves a zone by its ID. It returns ErrZoneNotFound when no row
// exists.
func (r *ZoneRepo) GetByID(ctx context.Context, id uint64) (*Zone, error) {
	const q = `SELECT id, nombre FROM zonas WHERE id = ?`
	var z Zone
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&z.ID, &z.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}
	return &z, nil
}

// ListAll returns every zone ordered by name for stable display.
func (r *ZoneRepo) ListAll(ctx context.Context) ([]Zone, error) {
	const q = `SELECT id, nombre FROM zonas ORDER BY nombre`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	zones := make([]Zone, 0)
	for rows.Next() {
		var z Zone
		if err := rows.Scan(&z.ID, &z.Name); err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

// Update renames a zone. It returns ErrZoneNotFound when the zone does not
// exist.
func (r *ZoneRepo) Update(ctx context.Context, id uint64, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE zonas SET nombre = ? WHERE id = ?`, name, id)
	if err != nil {
		return err
	}
	return mustAffect(res, ErrZoneNotFound)
}

// Delete removes a zone. Deleting a zone that still owns tables fails with
// the storage layer's foreign key error; policy for orphaned tables is an
// admin decision, not enforced here.
func (r *ZoneRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM zonas WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mustAffect(res, ErrZoneNotFound)
}

// mustAffect converts a zero-rows-affected result into the provided
// not-found sentinel. The connection runs with clientFoundRows, so an UPDATE
// that matches a row but changes nothing still counts as affected.
func mustAffect(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
