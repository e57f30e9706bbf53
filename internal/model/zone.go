package model

// Zone represents a named physical area of the dining room (e.g. "Terraza").
// Zones own tables and exist purely as reference data for the availability
// queries and the booking form. This struct corresponds to a row in the
// `zonas` table.
//
// Fields:
//
//	ID   – primary key identifier.
//	Name – human readable zone name.
type Zone struct {
	ID   uint64 // zonas.id
	Name string // zonas.nombre
}
