package seed

import "time"

// DiscordEpoch is the zero point of snowflake timestamps.
var DiscordEpoch = time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)

// snowflakeTimeShift is where a snowflake's millisecond timestamp starts.
const snowflakeTimeShift = 22

// SnowflakeTime returns the creation time embedded in a snowflake identifier.
func SnowflakeTime(id uint64) time.Time {
	ms := int64(id >> snowflakeTimeShift)
	return DiscordEpoch.Add(time.Duration(ms) * time.Millisecond)
}

// SnowflakeFromTime builds a snowflake for t. low fills the worker, process
// and increment bits; only its low 22 bits are used. Times before the epoch
// clamp to it.
func SnowflakeFromTime(t time.Time, low uint64) uint64 {
	ms := t.Sub(DiscordEpoch).Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return uint64(ms)<<snowflakeTimeShift | low&(1<<snowflakeTimeShift-1)
}

// TimestampTime returns the earliest time an event with the given seed
// timestamp field could have been created. The field has a resolution of
// 2^16 milliseconds, a little over a minute.
func TimestampTime(timestamp uint64) time.Time {
	return SnowflakeTime(timestamp << TimestampShift)
}
