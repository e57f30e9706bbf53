package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elfogon/restaurant-reservations/internal/repository"
)

func newAvailabilityHandler(t *testing.T) (*AvailabilityHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAvailabilityHandler(repository.NewSlotRepo(db), repository.NewReservationRepo(db)), mock
}

func getContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestOpenSlots(t *testing.T) {
	h, mock := newAvailabilityHandler(t)

	// 2026-09-05 is a Saturday.
	mock.ExpectQuery("SELECT hora_spot FROM turnos").
		WithArgs("Sábado").
		WillReturnRows(sqlmock.NewRows([]string{"hora_spot"}).AddRow("13:00").AddRow("21:00"))

	c, rec := getContext("/v1/reservations/availability/slots?date=2026-09-05")
	require.NoError(t, h.OpenSlots(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"fecha":"2026-09-05","dia_semana":"Sábado","horarios":["13:00","21:00"]}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenSlotsBadDate(t *testing.T) {
	h, _ := newAvailabilityHandler(t)

	cases := []struct {
		name   string
		target string
	}{
		{name: "missing", target: "/v1/reservations/availability/slots"},
		{name: "wrong layout", target: "/v1/reservations/availability/slots?date=05-09-2026"},
		{name: "impossible date", target: "/v1/reservations/availability/slots?date=2026-02-31"},
		{name: "garbage", target: "/v1/reservations/availability/slots?date=mañana"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := getContext(tc.target)
			require.NoError(t, h.OpenSlots(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestOpenSlotsEmptyWeekday(t *testing.T) {
	h, mock := newAvailabilityHandler(t)

	mock.ExpectQuery("SELECT hora_spot FROM turnos").
		WithArgs("Lunes").
		WillReturnRows(sqlmock.NewRows([]string{"hora_spot"}))

	c, rec := getContext("/v1/reservations/availability/slots?date=2026-09-07")
	require.NoError(t, h.OpenSlots(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"horarios":[]`)
}

func TestOpenTablesQueryValidation(t *testing.T) {
	h, _ := newAvailabilityHandler(t)

	cases := []struct {
		name   string
		target string
	}{
		{name: "missing date", target: "/v1/reservations/availability/tables?time=21:00&zone_id=1&party_size=2"},
		{name: "bad date", target: "/v1/reservations/availability/tables?date=nope&time=21:00&zone_id=1&party_size=2"},
		{name: "missing time", target: "/v1/reservations/availability/tables?date=2026-09-05&zone_id=1&party_size=2"},
		{name: "zero zone", target: "/v1/reservations/availability/tables?date=2026-09-05&time=21:00&zone_id=0&party_size=2"},
		{name: "bad party size", target: "/v1/reservations/availability/tables?date=2026-09-05&time=21:00&zone_id=1&party_size=abc"},
		{name: "zero party size", target: "/v1/reservations/availability/tables?date=2026-09-05&time=21:00&zone_id=1&party_size=0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := getContext(tc.target)
			require.NoError(t, h.OpenTables(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestOpenTables(t *testing.T) {
	h, mock := newAvailabilityHandler(t)

	rows := sqlmock.NewRows([]string{
		"id", "numero_mesa", "capacidad", "estado", "descripcion", "z.id", "z.nombre",
	}).AddRow(3, 1, 4, "disponible", nil, 1, "Terraza")
	mock.ExpectQuery("FROM mesas m").
		WithArgs(uint64(1), uint32(2), "disponible", "2026-09-05", "21:00", "cancelada").
		WillReturnRows(rows)

	c, rec := getContext("/v1/reservations/availability/tables?date=2026-09-05&time=21:00&zone_id=1&party_size=2")
	require.NoError(t, h.OpenTables(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"numero_mesa":1`)
	assert.Contains(t, rec.Body.String(), `"hora_spot":"21:00"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
