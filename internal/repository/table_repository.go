package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/elfogon/restaurant-reservations/internal/model"
)

// Table mirrors a row of the `mesas` table joined with its zone for display.
type Table struct {
	ID          uint64  `json:"id"`
	Number      uint32  `json:"numero_mesa"`
	Capacity    uint32  `json:"capacidad"`
	Status      string  `json:"estado"`
	Description *string `json:"descripcion,omitempty"`
	Zone        Zone    `json:"zona"`
}

// TableRepo provides data access to the restaurant's tables.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo constructs a TableRepo with the given DB handle.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

const tableColumns = `m.id, m.numero_mesa, m.capacidad, m.estado, m.descripcion, z.id, z.nombre`

func scanTable(row interface{ Scan(...any) error }) (*Table, error) {
	var t Table
	var desc sql.NullString
	if err := row.Scan(&t.ID, &t.Number, &t.Capacity, &t.Status, &desc, &t.Zone.ID, &t.Zone.Name); err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		t.Description = &d
	}
	return &t, nil
}

// Create inserts a new table. The zone must exist; capacity must already be
// validated by the caller. The generated ID is written back and the full row
// is read again so the zone name is populated for immediate display.
func (r *TableRepo) Create(ctx context.Context, t *Table) error {
	if t.Status == "" {
		t.Status = model.TableAvailable
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO mesas (numero_mesa, capacidad, estado, descripcion, zona_id) VALUES (?, ?, ?, ?, ?)`,
		t.Number, t.Capacity, t.Status, t.Description, t.Zone.ID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	stored, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = *stored
	return nil
}

// GetByID retrieves a table with its zone. It returns ErrTableNotFound when
// no row exists.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM mesas m JOIN zonas z ON z.id = m.zona_id WHERE m.id = ?`
	t, err := scanTable(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListAll returns every table with its zone, ordered by zone then table
// number.
func (r *TableRepo) ListAll(ctx context.Context) ([]Table, error) {
	const q = `SELECT ` + tableColumns + `
	           FROM mesas m JOIN zonas z ON z.id = m.zona_id
	           ORDER BY z.nombre, m.numero_mesa`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tables := make([]Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, *t)
	}
	return tables, rows.Err()
}

// Update rewrites a table's mutable attributes. Flipping estado to
// bloqueada takes the table out of rotation without deleting it.
func (r *TableRepo) Update(ctx context.Context, t *Table) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE mesas SET numero_mesa = ?, capacidad = ?, estado = ?, descripcion = ?, zona_id = ? WHERE id = ?`,
		t.Number, t.Capacity, t.Status, t.Description, t.Zone.ID, t.ID)
	if err != nil {
		return err
	}
	return mustAffect(res, ErrTableNotFound)
}

// Delete removes a table. Whether deleting a table with historic
// reservations is allowed is decided by the schema's foreign keys, not here.
func (r *TableRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM mesas WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mustAffect(res, ErrTableNotFound)
}
