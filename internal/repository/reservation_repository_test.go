package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elfogon/restaurant-reservations/internal/model"
)

var referenceRe = regexp.MustCompile(`^RES-\d{6}-[A-Z0-9]{4}$`)

func TestGenerateReference(t *testing.T) {
	now := time.Date(2026, 9, 5, 21, 30, 0, 0, time.UTC)
	ref, err := GenerateReference(now)
	require.NoError(t, err)
	assert.Regexp(t, referenceRe, ref)
	assert.Equal(t, "RES-260905-", ref[:11])
}

func TestGenerateReferenceUsesUTCDate(t *testing.T) {
	// 00:30 local in UTC+2 is still the previous day in UTC.
	loc := time.FixedZone("CEST", 2*60*60)
	now := time.Date(2026, 9, 6, 0, 30, 0, 0, loc)
	ref, err := GenerateReference(now)
	require.NoError(t, err)
	assert.Equal(t, "RES-260905-", ref[:11])
}

func openTableRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "numero_mesa", "capacidad", "estado", "descripcion", "z.id", "z.nombre",
	})
}

func TestOpenTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date, _ := model.ParseDate("2026-09-05")
	rows := openTableRows().
		AddRow(3, 1, 4, "disponible", nil, 2, "Terraza").
		AddRow(5, 2, 6, "disponible", "junto a la ventana", 2, "Terraza")
	mock.ExpectQuery("FROM mesas m").
		WithArgs(uint64(2), uint32(4), "disponible", "2026-09-05", "21:00", "cancelada").
		WillReturnRows(rows)

	repo := NewReservationRepo(db)
	tables, err := repo.OpenTables(context.Background(), date, "21:00", 2, 4)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, uint64(3), tables[0].ID)
	assert.Nil(t, tables[0].Description)
	assert.Equal(t, "Terraza", tables[1].Zone.Name)
	require.NotNil(t, tables[1].Description)
	assert.Equal(t, "junto a la ventana", *tables[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenTablesUnknownZoneIsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date, _ := model.ParseDate("2026-09-05")
	mock.ExpectQuery("FROM mesas m").WillReturnRows(openTableRows())

	repo := NewReservationRepo(db)
	tables, err := repo.OpenTables(context.Background(), date, "21:00", 999, 2)
	require.NoError(t, err)
	assert.NotNil(t, tables)
	assert.Empty(t, tables)
}

func TestCreateTxTranslatesDuplicateKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO reservas").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	repo := NewReservationRepo(db)
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	date, _ := model.ParseDate("2026-09-05")
	rec := &ReservationRecord{
		Reference:    "RES-260905-AB12",
		CustomerName: "Ana",
		CustomerDNI:  "12345678Z",
		Date:         date,
		SlotID:       7,
		PartySize:    2,
		TableID:      3,
		Estado:       model.EstadoPendiente,
	}
	err = repo.CreateTx(ctx, tx, rec)
	assert.ErrorIs(t, err, ErrTableUnavailable)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTxPopulatesRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC().Truncate(time.Second)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO reservas").
		WithArgs("RES-260905-AB12", "Ana", "12345678Z", "ana@example.com",
			"2026-09-05", uint64(7), uint32(2), uint64(3), model.EstadoPendiente).
		WillReturnResult(sqlmock.NewResult(41, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM reservas").
		WithArgs(uint64(41)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectCommit()

	repo := NewReservationRepo(db)
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	date, _ := model.ParseDate("2026-09-05")
	rec := &ReservationRecord{
		Reference:     "RES-260905-AB12",
		CustomerName:  "Ana",
		CustomerDNI:   "12345678Z",
		CustomerEmail: "ana@example.com",
		Date:          date,
		SlotID:        7,
		PartySize:     2,
		TableID:       3,
		Estado:        model.EstadoPendiente,
	}
	require.NoError(t, repo.CreateTx(ctx, tx, rec))
	require.NoError(t, tx.Commit())
	assert.Equal(t, uint64(41), rec.ID)
	assert.Equal(t, now, rec.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEstado(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("UPDATE reservas SET estado").
			WithArgs(model.EstadoConfirmada, uint64(9), model.EstadoPendiente).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewReservationRepo(db)
		err = repo.UpdateEstado(context.Background(), 9, model.EstadoPendiente, model.EstadoConfirmada)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent change", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("UPDATE reservas SET estado").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(uint64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		repo := NewReservationRepo(db)
		err = repo.UpdateEstado(context.Background(), 9, model.EstadoPendiente, model.EstadoConfirmada)
		assert.ErrorIs(t, err, ErrEstadoConflict)
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("UPDATE reservas SET estado").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(uint64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		repo := NewReservationRepo(db)
		err = repo.UpdateEstado(context.Background(), 9, model.EstadoPendiente, model.EstadoConfirmada)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestGetByIDScansNullEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date, _ := model.ParseDate("2026-09-05")
	rows := sqlmock.NewRows([]string{
		"r.id", "numero_reserva", "nombre_cliente", "dni_cliente", "correo_cliente",
		"fecha_reserva", "numero_personas", "estado",
		"m.id", "numero_mesa", "capacidad", "z.id", "z.nombre",
		"t.id", "dia_semana", "hora_spot",
	}).AddRow(41, "RES-260905-AB12", "Ana", "12345678Z", nil,
		date, 2, "pendiente",
		3, 1, 4, 1, "Terraza",
		7, "Sábado", "21:00")
	mock.ExpectQuery("FROM reservas r").
		WithArgs(uint64(41)).
		WillReturnRows(rows)

	repo := NewReservationRepo(db)
	d, err := repo.GetByID(context.Background(), 41)
	require.NoError(t, err)
	assert.Empty(t, d.CustomerEmail)
	assert.Equal(t, "RES-260905-AB12", d.Reference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByDNIAndReferenceNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM reservas r").
		WithArgs("12345678Z", "RES-260905-XXXX").
		WillReturnError(sql.ErrNoRows)

	repo := NewReservationRepo(db)
	_, err = repo.FindByDNIAndReference(context.Background(), "12345678Z", "RES-260905-XXXX")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
