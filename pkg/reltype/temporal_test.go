package reltype

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDateTimeStringFormatsISO8601(t *testing.T) {
	d := Date{Year: 2024, Month: 3, Day: 9}
	require.Equal(t, "2024-03-09", d.String())

	tm := Time{Hour: 7, Minute: 5, Second: 1}
	require.Equal(t, "07:05:01", tm.String())

	dt := DateTime{Date: d, Time: tm}
	require.Equal(t, "2024-03-09T07:05:01", dt.String())
}

func TestOffsetValuesFormatPositiveAndNegativeOffsets(t *testing.T) {
	ot := OffsetTimeValue{Time: Time{Hour: 7, Minute: 5, Second: 1}, OffsetSeconds: -5 * 3600}
	require.Equal(t, "07:05:01-05:00", ot.String())

	odt := OffsetDateTimeValue{
		DateTime:      DateTime{Date: Date{Year: 2024, Month: 3, Day: 9}, Time: Time{Hour: 7}},
		OffsetSeconds: 2*3600 + 30*60,
	}
	require.Equal(t, "2024-03-09T07:00:00+02:30", odt.String())
}

func TestInstantValueStringIncludesNanoseconds(t *testing.T) {
	i := InstantValue{Epoch: 1700000000, Nanosecond: 123}
	require.Equal(t, "1700000000.000000123", i.String())
}
