package model

import "time"

// Reservation records one party's booking of a table for a date and slot.
// The reference is a short human-readable code handed to the customer for
// self-service lookups; it is not a key. Rows in a non-cancelled estado are
// what the availability queries subtract from the table set. This struct
// corresponds to a row in the `reservas` table.
//
// Fields:
//
//	ID            – primary key identifier.
//	Reference     – customer-facing code, RES-<YYMMDD>-<4 alnum>.
//	CustomerName  – name the booking was made under.
//	CustomerDNI   – national ID string used for lookups.
//	CustomerEmail – contact address offered to the notification collaborator.
//	Date          – reservation calendar date (date only, UTC).
//	SlotID        – slot template being booked.
//	PartySize     – number of guests; always >= 1 and <= table capacity.
//	TableID       – table being booked.
//	Estado        – lifecycle state, see Estado.
//	CreatedAt     – creation timestamp.
//	UpdatedAt     – last update timestamp.
type Reservation struct {
	ID            uint64    // reservas.id
	Reference     string    // reservas.numero_reserva
	CustomerName  string    // reservas.nombre_cliente
	CustomerDNI   string    // reservas.dni_cliente
	CustomerEmail string    // reservas.correo_cliente
	Date          time.Time // reservas.fecha_reserva
	SlotID        uint64    // reservas.turno_id
	PartySize     uint32    // reservas.numero_personas
	TableID       uint64    // reservas.mesa_id
	Estado        Estado    // reservas.estado
	CreatedAt     time.Time // reservas.created_at
	UpdatedAt     time.Time // reservas.updated_at
}
