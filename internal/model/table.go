package model

// Table states. A blocked table is out of rotation without being deleted and
// never appears in availability results.
const (
	TableAvailable = "disponible"
	TableBlocked   = "bloqueada"
)

// Table represents a physical dining table. Each table belongs to exactly one
// zone and has a fixed seating capacity, which is the source of truth for
// "can this table host N guests". This struct corresponds to a row in the
// `mesas` table.
//
// Fields:
//
//	ID          – primary key identifier.
//	Number      – display number of the table within the restaurant.
//	Capacity    – number of seats; always >= 1.
//	Status      – operational state (disponible or bloqueada).
//	Description – optional free text shown to staff.
//	ZoneID      – zone this table belongs to.
type Table struct {
	ID          uint64  // mesas.id
	Number      uint32  // mesas.numero_mesa
	Capacity    uint32  // mesas.capacidad
	Status      string  // mesas.estado
	Description *string // mesas.descripcion (nullable)
	ZoneID      uint64  // mesas.zona_id
}
