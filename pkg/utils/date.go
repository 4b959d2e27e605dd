package utils

import "time"

func FirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

func LastDayOfMonth(date time.Time) time.Time {
	return FirstDayOfMonth(date).AddDate(0, 1, -1)
}
