package pgxdriver

import (
	"fmt"

	"github.com/relq/relq/pkg/reldriver"
	"github.com/relq/relq/pkg/reltype"
)

func init() {
	reltype.RegisterDialectExtractor("postgres", extractPostgresFeature)
}

// extractPostgresFeature backs the DialectSpecific("postgres", "jsonb")
// tag pkg/dialect/postgres enables: decode the column's text
// representation unchanged, leaving interpretation to the caller.
// DialectSpecific tags delegate to a dialect-provided extractor, wired
// to this package's Cursor rather than the core.
func extractPostgresFeature(cursor reldriver.Cursor, col int, feature string) (any, bool, error) {
	switch feature {
	case "jsonb":
		return cursor.GetString(col)
	default:
		return nil, false, fmt.Errorf("pgxdriver: no extractor registered for postgres feature %q", feature)
	}
}
