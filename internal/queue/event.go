// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types carried in ReservationEvent.Type.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationFinished  = "reservation.finished"
)

// ReservationEvent is published whenever a reservation is created or changes
// estado. It carries enough information for downstream consumers to log or
// notify the customer without querying the primary database.
type ReservationEvent struct {
	Type          string `json:"type"`
	ReservationID uint64 `json:"reservation_id"`
	Reference     string `json:"numero_reserva"`
	CustomerName  string `json:"nombre_cliente"`
	CustomerDNI   string `json:"dni_cliente"`
	CustomerEmail string `json:"correo_cliente"`
	Date          string `json:"fecha_reserva"`
	Time          string `json:"hora_spot"`
	PartySize     uint32 `json:"numero_personas"`
	TableNumber   uint32 `json:"numero_mesa"`
	ZoneName      string `json:"zona"`
	Estado        string `json:"estado"`
	OccurredAt    string `json:"occurred_at"`
}
