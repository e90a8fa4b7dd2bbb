package model

import "time"

// TimestampLayout is fixed width, zero padded and always UTC, so two
// timestamps compare chronologically as plain strings.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func CurrentTimestamp() string {
	return FormatTimestamp(time.Now())
}

// CompareTimestampsDesc orders more recent timestamps first. Both inputs
// must be in TimestampLayout; nothing here checks that.
func CompareTimestampsDesc(a, b string) int {
	switch {
	case a == b:
		return 0
	case a > b:
		return -1
	default:
		return 1
	}
}
