package contact

import (
	"strconv"
	"time"
)

// BirthdayWindowDays is the length of the upcoming-birthdays window, today included.
const BirthdayWindowDays = 7

// BirthdayKeys returns the day-month keys of every date in the window that
// starts at today. A key is the day number followed by the month number in
// plain decimal, e.g. "103" for 10 March.
//
// Keys are not zero padded, so distinct dates can share a key: 1 December and
// 11 February are both "112". Stored birth dates are matched with the same
// concatenation, so such dates match each other.
func BirthdayKeys(today time.Time) []string {
	keys := make([]string, 0, BirthdayWindowDays)
	for i := 0; i < BirthdayWindowDays; i++ {
		d := today.AddDate(0, 0, i)
		keys = append(keys, BirthdayKey(d))
	}
	return keys
}

func BirthdayKey(d time.Time) string {
	return strconv.Itoa(d.Day()) + strconv.Itoa(int(d.Month()))
}
