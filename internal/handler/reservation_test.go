package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elfogon/restaurant-reservations/internal/repository"
)

func newReservationHandler(t *testing.T) (*ReservationHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewReservationHandler(
		repository.NewReservationRepo(db),
		repository.NewSlotRepo(db),
		repository.NewTableRepo(db),
	), mock
}

func postJSON(target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateReservationValidation(t *testing.T) {
	h, _ := newReservationHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{name: "empty body", body: `{}`},
		{name: "missing dni", body: `{"nombre_cliente":"Ana","fecha_reserva":"2026-09-05","turno_id":1,"numero_personas":2,"mesa_id":1}`},
		{name: "missing slot", body: `{"nombre_cliente":"Ana","dni_cliente":"12345678Z","fecha_reserva":"2026-09-05","numero_personas":2,"mesa_id":1}`},
		{name: "zero party", body: `{"nombre_cliente":"Ana","dni_cliente":"12345678Z","fecha_reserva":"2026-09-05","turno_id":1,"numero_personas":0,"mesa_id":1}`},
		{name: "bad date", body: `{"nombre_cliente":"Ana","dni_cliente":"12345678Z","fecha_reserva":"05/09/2026","turno_id":1,"numero_personas":2,"mesa_id":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := postJSON("/v1/reservations", tc.body)
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

const createBody = `{
	"nombre_cliente": "Ana",
	"dni_cliente": "12345678Z",
	"correo_cliente": "ana@example.com",
	"fecha_reserva": "2026-09-05",
	"turno_id": 7,
	"numero_personas": 2,
	"mesa_id": 3
}`

func expectSlot(mock sqlmock.Sqlmock, weekday string) {
	mock.ExpectQuery("SELECT id, dia_semana, hora_spot FROM turnos").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "dia_semana", "hora_spot"}).
			AddRow(7, weekday, "21:00"))
}

func expectTable(mock sqlmock.Sqlmock, capacity uint32) {
	mock.ExpectQuery("FROM mesas m JOIN zonas z").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "numero_mesa", "capacidad", "estado", "descripcion", "z.id", "z.nombre",
		}).AddRow(3, 1, capacity, "disponible", nil, 1, "Terraza"))
}

func TestCreateReservationSlotWeekdayMismatch(t *testing.T) {
	h, mock := newReservationHandler(t)

	// The requested date is a Saturday but the slot runs on Lunes.
	expectSlot(mock, "Lunes")

	c, rec := postJSON("/v1/reservations", createBody)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservationSlotNotFound(t *testing.T) {
	h, mock := newReservationHandler(t)

	mock.ExpectQuery("SELECT id, dia_semana, hora_spot FROM turnos").
		WithArgs(uint64(7)).
		WillReturnError(sql.ErrNoRows)

	c, rec := postJSON("/v1/reservations", createBody)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateReservationPartyExceedsCapacity(t *testing.T) {
	h, mock := newReservationHandler(t)

	expectSlot(mock, "Sábado")
	expectTable(mock, 1)

	c, rec := postJSON("/v1/reservations", createBody)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "capacity")
}

func TestCreateReservationConflictOnRecheck(t *testing.T) {
	h, mock := newReservationHandler(t)

	expectSlot(mock, "Sábado")
	expectTable(mock, 4)
	mock.ExpectBegin()
	// The table vanished between the availability read and the booking:
	// the in-transaction re-check returns an empty set.
	mock.ExpectQuery("FROM mesas m").
		WithArgs(uint64(1), uint32(2), "disponible", "2026-09-05", "21:00", "cancelada").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "numero_mesa", "capacidad", "estado", "descripcion", "z.id", "z.nombre",
		}))
	mock.ExpectRollback()

	c, rec := postJSON("/v1/reservations", createBody)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservationHappyPath(t *testing.T) {
	h, mock := newReservationHandler(t)

	now := time.Now().UTC().Truncate(time.Second)
	expectSlot(mock, "Sábado")
	expectTable(mock, 4)
	mock.ExpectBegin()
	// The in-transaction re-check still sees the table as free.
	mock.ExpectQuery("FROM mesas m").
		WithArgs(uint64(1), uint32(2), "disponible", "2026-09-05", "21:00", "cancelada").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "numero_mesa", "capacidad", "estado", "descripcion", "z.id", "z.nombre",
		}).AddRow(3, 1, 4, "disponible", nil, 1, "Terraza"))
	mock.ExpectExec("INSERT INTO reservas").
		WillReturnResult(sqlmock.NewResult(41, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM reservas").
		WithArgs(uint64(41)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectCommit()
	date, _ := time.Parse("2006-01-02", "2026-09-05")
	mock.ExpectQuery("FROM reservas r").
		WithArgs(uint64(41)).
		WillReturnRows(detailRows(date, "pendiente"))

	c, rec := postJSON("/v1/reservations", createBody)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"estado":"pendiente"`)
	assert.Regexp(t, `"numero_reserva":"RES-\d{6}-[A-Z0-9]{4}"`, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"fecha_reserva":"2026-09-05"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLookupReservation(t *testing.T) {
	h, mock := newReservationHandler(t)

	t.Run("missing params", func(t *testing.T) {
		c, rec := getContext("/v1/reservations/lookup?dni=12345678Z")
		require.NoError(t, h.Lookup(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("FROM reservas r").
			WithArgs("12345678Z", "RES-260905-XXXX").
			WillReturnError(sql.ErrNoRows)

		c, rec := getContext("/v1/reservations/lookup?dni=12345678Z&reference=RES-260905-XXXX")
		require.NoError(t, h.Lookup(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("found", func(t *testing.T) {
		date, _ := time.Parse("2006-01-02", "2026-09-05")
		mock.ExpectQuery("FROM reservas r").
			WithArgs("12345678Z", "RES-260905-AB12").
			WillReturnRows(detailRows(date, "pendiente"))

		c, rec := getContext("/v1/reservations/lookup?dni=12345678Z&reference=RES-260905-AB12")
		require.NoError(t, h.Lookup(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"numero_reserva":"RES-260905-AB12"`)
		assert.Contains(t, rec.Body.String(), `"fecha_reserva":"2026-09-05"`)
	})
}

func detailRows(date time.Time, estado string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"r.id", "numero_reserva", "nombre_cliente", "dni_cliente", "correo_cliente",
		"fecha_reserva", "numero_personas", "estado",
		"m.id", "numero_mesa", "capacidad", "z.id", "z.nombre",
		"t.id", "dia_semana", "hora_spot",
	}).AddRow(41, "RES-260905-AB12", "Ana", "12345678Z", "ana@example.com",
		date, 2, estado,
		3, 1, 4, 1, "Terraza",
		7, "Sábado", "21:00")
}

func patchEstado(id, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/v1/reservations/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/reservations/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestUpdateEstado(t *testing.T) {
	t.Run("unknown estado", func(t *testing.T) {
		h, _ := newReservationHandler(t)
		c, rec := patchEstado("41", `{"estado":"archivada"}`)
		require.NoError(t, h.UpdateEstado(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("illegal transition", func(t *testing.T) {
		h, mock := newReservationHandler(t)
		date, _ := time.Parse("2006-01-02", "2026-09-05")
		mock.ExpectQuery("FROM reservas r").
			WithArgs(uint64(41)).
			WillReturnRows(detailRows(date, "cancelada"))

		c, rec := patchEstado("41", `{"estado":"confirmada"}`)
		require.NoError(t, h.UpdateEstado(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "illegal estado transition")
	})

	t.Run("not found", func(t *testing.T) {
		h, mock := newReservationHandler(t)
		mock.ExpectQuery("FROM reservas r").
			WithArgs(uint64(41)).
			WillReturnError(sql.ErrNoRows)

		c, rec := patchEstado("41", `{"estado":"confirmada"}`)
		require.NoError(t, h.UpdateEstado(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("lost compare-and-swap", func(t *testing.T) {
		h, mock := newReservationHandler(t)
		date, _ := time.Parse("2006-01-02", "2026-09-05")
		mock.ExpectQuery("FROM reservas r").
			WithArgs(uint64(41)).
			WillReturnRows(detailRows(date, "pendiente"))
		mock.ExpectExec("UPDATE reservas SET estado").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(uint64(41)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		c, rec := patchEstado("41", `{"estado":"confirmada"}`)
		require.NoError(t, h.UpdateEstado(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "changed concurrently")
	})
}

func TestDeleteReservation(t *testing.T) {
	h, mock := newReservationHandler(t)

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM reservas").
			WithArgs(uint64(41)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		c, rec := deleteReservation("41")
		require.NoError(t, h.Delete(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM reservas").
			WithArgs(uint64(41)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		c, rec := deleteReservation("41")
		require.NoError(t, h.Delete(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func deleteReservation(id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/reservations/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/reservations/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}
