package meetings

import (
	"time"
)

// TimeSlots is the fixed set of bookable slots. Meeting times are stored as
// one of these strings, never as free-form clock values.
var TimeSlots = []string{
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"01:00 PM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
	"05:00 PM",
}

const slotLayout = "03:04 PM"

func ValidSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotStart combines a meeting's calendar date with its slot string into the
// wall-clock start of the meeting, in the date's location.
func SlotStart(date time.Time, slot string) (time.Time, error) {
	t, err := time.Parse(slotLayout, slot)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

func beforeToday(date time.Time) bool {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	return d.Before(today)
}
