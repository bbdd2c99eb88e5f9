// Package export converts tabular query results into delimited text and
// persists the artifacts through a blob sink. The dialect is fixed CSV:
// comma-separated, every field double-quoted, embedded quotes doubled, lines
// joined by newlines.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"shopcore/pkg/domain"
)

// Column pairs a header label with an accessor extracting the cell value from
// a row.
type Column[T any] struct {
	Label    string
	Accessor func(T) any
}

// ToDelimitedText serializes rows under the given columns: a header line of
// quoted labels, then one quoted-and-comma-joined line per row. No trailing
// newline is emitted.
func ToDelimitedText[T any](rows []T, columns []Column[T]) string {
	var b strings.Builder
	for i, column := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		writeQuoted(&b, column.Label)
	}
	for _, row := range rows {
		b.WriteByte('\n')
		for i, column := range columns {
			if i > 0 {
				b.WriteByte(',')
			}
			writeQuoted(&b, formatValue(column.Accessor(row)))
		}
	}
	return b.String()
}

func writeQuoted(b *strings.Builder, value string) {
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(value, `"`, `""`))
	b.WriteByte('"')
}

// formatValue coerces a cell value to text. Floats drop insignificant zeros
// so money columns read naturally.
func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Filename builds the export naming convention `{base}_{ISO-date}.{ext}`.
// Names collide only within the same day; overwriting an earlier export from
// the same day is acceptable.
func Filename(base, ext string, clock domain.Clock) string {
	return fmt.Sprintf("%s_%s.%s", base, clock().Format("2006-01-02"), ext)
}
