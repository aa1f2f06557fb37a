package export

import (
	"strings"
	"time"

	"golang.org/x/text/width"
)

const dateLayout = "2006/01/02"

// FormatDate форматирует дату под B2 (YYYY/MM/DD). nil и нулевое время дают "".
func FormatDate(d *time.Time) string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// JoinParts склеивает непустые части адреса/имени через sep, сохраняя порядок.
func JoinParts(parts []string, sep string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, sep)
}

// digitsOnly оставляет только цифры (полноширинные тоже считаются).
func digitsOnly(s string) string {
	s = width.Narrow.String(s)
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
