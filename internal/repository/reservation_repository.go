package repository

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/elfogon/restaurant-reservations/internal/model"
)

// ReservationRepo provides data access to reservations and the availability
// queries derived from them. The booking path runs inside a caller-owned
// transaction via the Tx methods so the availability re-check and the insert
// are atomic; the composite unique key on (mesa, fecha, turno) for
// non-cancelled rows is the final arbiter when two bookings race anyway.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span the availability re-check and the insert.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx. The
// availability predicate is written against it once so the public read path
// and the in-transaction booking re-check cannot diverge.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// openTablesQuery selects the tables of a zone that can seat the party and
// are not held by a non-cancelled reservation at the given date and time.
// The exclusion is a set difference over the zone's tables, not a join over
// all reservations. A cancelled reservation frees its table.
const openTablesQuery = `SELECT ` + tableColumns + `
	FROM mesas m
	JOIN zonas z ON z.id = m.zona_id
	WHERE m.zona_id = ? AND m.capacidad >= ? AND m.estado = ?
	  AND m.id NOT IN (
		SELECT r.mesa_id FROM reservas r
		JOIN turnos t ON t.id = r.turno_id
		WHERE r.fecha_reserva = ? AND t.hora_spot = ? AND r.estado <> ?
	  )
	ORDER BY m.numero_mesa`

func openTables(ctx context.Context, q querier, date time.Time, slotTime string, zoneID uint64, partySize uint32) ([]Table, error) {
	rows, err := q.QueryContext(ctx, openTablesQuery,
		zoneID, partySize, model.TableAvailable,
		date.Format(model.DateLayout), slotTime, model.EstadoCancelada)
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

// OpenTables returns the free tables for a date, slot time, zone and party
// size. An unknown zone yields an empty set, matching "no tables" semantics.
// Results are never cached: staleness here directly causes double bookings.
func (r *ReservationRepo) OpenTables(ctx context.Context, date time.Time, slotTime string, zoneID uint64, partySize uint32) ([]Table, error) {
	return openTables(ctx, r.db, date, slotTime, zoneID, partySize)
}

// OpenTablesTx is OpenTables evaluated inside an existing transaction. The
// booking handler uses it to re-check availability immediately before the
// insert.
func (r *ReservationRepo) OpenTablesTx(ctx context.Context, tx *sql.Tx, date time.Time, slotTime string, zoneID uint64, partySize uint32) ([]Table, error) {
	return openTables(ctx, tx, date, slotTime, zoneID, partySize)
}

// referenceAlphabet holds the characters used for the random suffix of a
// booking reference.
const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReference builds a customer-facing booking code of the form
// RES-<YYMMDD>-<4 alnum>. The suffix comes from crypto/rand. Collisions are
// possible but only make a customer lookup ambiguous; the reference is not a
// key.
func GenerateReference(now time.Time) (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return fmt.Sprintf("RES-%s-%s", now.UTC().Format("060102"), string(buf)), nil
}

// ReservationRecord mirrors the schema of the reservas table. It is used by
// the repository when inserting and scanning rows; handlers work with
// ReservationDetail instead.
type ReservationRecord struct {
	ID            uint64
	Reference     string
	CustomerName  string
	CustomerDNI   string
	CustomerEmail string
	Date          time.Time
	SlotID        uint64
	PartySize     uint32
	TableID       uint64
	Estado        model.Estado
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction and populates the generated ID and timestamps on the record.
// A duplicate-key violation of the active-reservation unique index is
// translated into ErrTableUnavailable so a lost race reads the same as a
// failed re-check. The caller must commit or roll back the transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *ReservationRecord) error {
	const q = `INSERT INTO reservas
		(numero_reserva, nombre_cliente, dni_cliente, correo_cliente, fecha_reserva, turno_id, numero_personas, mesa_id, estado)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		rec.Reference, rec.CustomerName, rec.CustomerDNI, rec.CustomerEmail,
		rec.Date.Format(model.DateLayout), rec.SlotID, rec.PartySize, rec.TableID, rec.Estado)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrTableUnavailable
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	// Query back the row to populate timestamps and defaults.
	const sel = `SELECT created_at, updated_at FROM reservas WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, rec.ID).Scan(&rec.CreatedAt, &rec.UpdatedAt)
}

// isDuplicateKey reports whether err is MySQL error 1062 (ER_DUP_ENTRY).
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// reservationTable and reservationSlot carry the joined table and slot
// context of a reservation for display, so customers and staff never need a
// second request to resolve identifiers.
type reservationTable struct {
	ID       uint64 `json:"id"`
	Number   uint32 `json:"numero_mesa"`
	Capacity uint32 `json:"capacidad"`
	Zone     Zone   `json:"zona"`
}

type reservationSlot struct {
	ID      uint64 `json:"id"`
	Weekday string `json:"dia_semana"`
	Time    string `json:"hora_spot"`
}

// ReservationDetail is a reservation joined with its table, zone and slot.
// It is the shape returned to clients for creates, lookups and staff lists.
type ReservationDetail struct {
	ID            uint64           `json:"id"`
	Reference     string           `json:"numero_reserva"`
	CustomerName  string           `json:"nombre_cliente"`
	CustomerDNI   string           `json:"dni_cliente"`
	CustomerEmail string           `json:"correo_cliente"`
	Date          string           `json:"fecha_reserva"`
	PartySize     uint32           `json:"numero_personas"`
	Estado        model.Estado     `json:"estado"`
	Table         reservationTable `json:"mesa"`
	Slot          reservationSlot  `json:"turno"`
}

const detailQuery = `SELECT r.id, r.numero_reserva, r.nombre_cliente, r.dni_cliente, r.correo_cliente,
	       r.fecha_reserva, r.numero_personas, r.estado,
	       m.id, m.numero_mesa, m.capacidad, z.id, z.nombre,
	       t.id, t.dia_semana, t.hora_spot
	FROM reservas r
	JOIN mesas m ON m.id = r.mesa_id
	JOIN zonas z ON z.id = m.zona_id
	JOIN turnos t ON t.id = r.turno_id`

func scanDetail(row interface{ Scan(...any) error }) (*ReservationDetail, error) {
	var d ReservationDetail
	var date time.Time
	var email sql.NullString // correo_cliente is nullable
	if err := row.Scan(
		&d.ID, &d.Reference, &d.CustomerName, &d.CustomerDNI, &email,
		&date, &d.PartySize, &d.Estado,
		&d.Table.ID, &d.Table.Number, &d.Table.Capacity, &d.Table.Zone.ID, &d.Table.Zone.Name,
		&d.Slot.ID, &d.Slot.Weekday, &d.Slot.Time,
	); err != nil {
		return nil, err
	}
	d.CustomerEmail = email.String
	d.Date = date.Format(model.DateLayout)
	return &d, nil
}

// GetByID returns one reservation with its table, zone and slot. It returns
// ErrReservationNotFound when no row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*ReservationDetail, error) {
	d, err := scanDetail(r.db.QueryRowContext(ctx, detailQuery+` WHERE r.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return d, nil
}

// FindByDNIAndReference is the customer self-service lookup: exact match on
// both the DNI and the booking reference, no fuzzy matching.
func (r *ReservationRepo) FindByDNIAndReference(ctx context.Context, dni, reference string) (*ReservationDetail, error) {
	const where = ` WHERE r.dni_cliente = ? AND r.numero_reserva = ?`
	d, err := scanDetail(r.db.QueryRowContext(ctx, detailQuery+where, dni, reference))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return d, nil
}

// ListAll returns every reservation for staff review, newest date first and
// then by slot time.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, detailQuery+` ORDER BY r.fecha_reserva DESC, t.hora_spot`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, rows.Err()
}

// UpdateEstado moves a reservation from one lifecycle state to another with
// a compare-and-swap on the current estado. When the row exists but its
// estado no longer matches `from`, another caller has already transitioned
// it and ErrEstadoConflict is returned; legality of the from->to move itself
// is the model's concern and must be checked before calling. Cancelling a
// reservation clears the active-reservation unique key, which is what frees
// the table for re-booking.
func (r *ReservationRepo) UpdateEstado(ctx context.Context, id uint64, from, to model.Estado) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservas SET estado = ? WHERE id = ? AND estado = ?`, to, id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM reservas WHERE id = ?)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrReservationNotFound
	}
	return ErrEstadoConflict
}

// Delete removes a reservation outright. Staff-only; customers cancel via
// the estado transition so the record is kept.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservas WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mustAffect(res, ErrReservationNotFound)
}
