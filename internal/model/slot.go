package model

// SlotTemplate maps a weekday to one bookable time of day. The weekly
// template is static seed data: a weekday may carry several times, and the
// set of templates for a date's weekday is exactly the set of slots the
// restaurant accepts for that date. This struct corresponds to a row in the
// `turnos` table.
//
// Fields:
//
//	ID      – primary key identifier.
//	Weekday – Spanish day name ("Domingo".."Sábado"), see WeekdayName.
//	Time    – time of day in HH:MM form.
type SlotTemplate struct {
	ID      uint64 // turnos.id
	Weekday string // turnos.dia_semana
	Time    string // turnos.hora_spot
}
