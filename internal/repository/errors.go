// Package repository defines the data access layer and the sentinel errors
// shared across it. Handlers compare against these values with errors.Is to
// translate storage outcomes into HTTP responses: not-found sentinels map to
// 404 and ErrTableUnavailable maps to 409.
package repository

import "errors"

// ErrZoneNotFound is returned when a zone lookup fails.
var ErrZoneNotFound = errors.New("zone not found")

// ErrTableNotFound is returned when a table lookup fails.
var ErrTableNotFound = errors.New("table not found")

// ErrSlotNotFound is returned when a slot template lookup fails.
var ErrSlotNotFound = errors.New("slot not found")

// ErrReservationNotFound is returned when a reservation lookup fails.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrEstadoConflict is returned when a state transition loses a race: the
// reservation exists but its estado was changed by another caller between the
// read and the write. Handlers translate it into HTTP 409.
var ErrEstadoConflict = errors.New("reservation state changed concurrently")

// ErrTableUnavailable is returned when a booking cannot be created because a
// non-cancelled reservation already holds the same (table, date, slot). It is
// produced both by the in-transaction availability re-check and by the
// duplicate-key translation on the insert itself, so racing bookings surface
// the same error regardless of which defense catches them.
var ErrTableUnavailable = errors.New("table unavailable for the requested date and time")
