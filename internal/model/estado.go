package model

import "strings"

// Estado represents the lifecycle state of a reservation. The values are the
// Spanish labels stored in the database and exposed over the API.
type Estado string

const (
	EstadoPendiente  Estado = "pendiente"  // created, awaiting confirmation
	EstadoConfirmada Estado = "confirmada" // confirmed by staff or payment
	EstadoCancelada  Estado = "cancelada"  // cancelled; frees the table/slot/date
	EstadoFinalizada Estado = "finalizada" // party seated and gone; terminal
)

// transitions is the single source of truth for legal estado changes.
// pendiente -> confirmada | cancelada
// confirmada -> cancelada | finalizada
// cancelada and finalizada are terminal.
var transitions = map[Estado][]Estado{
	EstadoPendiente:  {EstadoConfirmada, EstadoCancelada},
	EstadoConfirmada: {EstadoCancelada, EstadoFinalizada},
	EstadoCancelada:  {},
	EstadoFinalizada: {},
}

// ParseEstado returns the canonical Estado for the given input, or false when
// the value is not a known state.
func ParseEstado(s string) (Estado, bool) {
	e := Estado(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := transitions[e]; !ok {
		return "", false
	}
	return e, true
}

// CanTransitionTo reports whether moving from e to next is a legal lifecycle
// change. Terminal states admit no transitions.
func (e Estado) CanTransitionTo(next Estado) bool {
	for _, allowed := range transitions[e] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Occupies reports whether a reservation in this state blocks its
// (table, date, slot) combination. Only cancelled reservations free their
// table; a finalizada reservation still occupies its historical slot.
func (e Estado) Occupies() bool {
	return e != EstadoCancelada
}
