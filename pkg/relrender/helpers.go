package relrender

import "github.com/relq/relq/pkg/reltype"

var boolTag = reltype.Base(reltype.Bool)

var temporalKinds = map[reltype.Kind]bool{
	reltype.LocalDate: true, reltype.LocalTime: true, reltype.LocalDateTime: true,
	reltype.Instant: true, reltype.OffsetTime: true, reltype.OffsetDateTime: true,
	reltype.ZonedDateTime: true,
}

func isTemporalTag(tag reltype.Tag) bool {
	for k := range temporalKinds {
		if tag.Equal(reltype.Base(k)) {
			return true
		}
	}
	return false
}
