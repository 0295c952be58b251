package reltype

import "fmt"

// Date, Time, DateTime and the Offset/Instant variants below are the
// Go-side representations of the temporal tags. They are plain value
// types rather than time.Time so that LocalDateTime (no zone) and
// OffsetDateTime (explicit zone) cannot be confused with each other at
// the type level, and so decoding never silently applies the host's
// local timezone to a LocalDateTime column.
type Date struct {
	Year, Month, Day int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

type Time struct {
	Hour, Minute, Second, Nanosecond int
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

type DateTime struct {
	Date Date
	Time Time
}

func (dt DateTime) String() string {
	return dt.Date.String() + "T" + dt.Time.String()
}

// InstantValue is an absolute point in time: seconds since the Unix
// epoch (UTC) plus sub-second precision.
type InstantValue struct {
	Epoch      int64
	Nanosecond int
}

func (i InstantValue) String() string {
	return fmt.Sprintf("%d.%09d", i.Epoch, i.Nanosecond)
}

type OffsetTimeValue struct {
	Time          Time
	OffsetSeconds int
}

func (t OffsetTimeValue) String() string {
	return t.Time.String() + formatOffset(t.OffsetSeconds)
}

type OffsetDateTimeValue struct {
	DateTime      DateTime
	OffsetSeconds int
}

func (dt OffsetDateTimeValue) String() string {
	return dt.DateTime.String() + formatOffset(dt.OffsetSeconds)
}

func formatOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}
