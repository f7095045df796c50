package timeutil

import "time"

func NowUnix() int64 {
	return time.Now().Unix()
}

// DayKey formats t as YYYY-MM-DD in UTC, the canonical key for habit logs.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParseDayKey parses a DayKey-shaped value. Anything else is rejected so
// stored day keys stay in one canonical form.
func ParseDayKey(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.UTC)
}
