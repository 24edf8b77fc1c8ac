package model

import "time"

// TimeslotID uniquely identifies a timeslot
type TimeslotID string

// SlotDateFormat is the calendar-date layout used for Timeslot.SlotDate.
// Dates are plain calendar dates with no timezone semantics.
const SlotDateFormat = "2006-01-02"

// Timeslot is a bookable period within a calendar date, e.g.
// ("2024-05-01", "Morning"). Natural ordering is by date then period.
type Timeslot struct {
	ID        TimeslotID `json:"id"`
	SlotDate  string     `json:"slot_date"`
	Period    string     `json:"period"`
	CreatedAt time.Time  `json:"created_at"`
}

// Less reports whether t sorts before other in (SlotDate, Period) order
func (t Timeslot) Less(other Timeslot) bool {
	if t.SlotDate != other.SlotDate {
		return t.SlotDate < other.SlotDate
	}
	return t.Period < other.Period
}
