package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var dateLayouts = []string{"2006-01-02", "02/01/2006"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid service date %q", s)
}

// parseValue accepts both "1.234,56" and "1,234.56". When both separators
// appear the last one is the decimal mark. A single separator followed by
// exactly three digits, or repeated, groups thousands ("150.000" is 150000).
func parseValue(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(s), "$"), " ", "")
	if clean == "" {
		return decimal.Zero, fmt.Errorf("missing value")
	}

	dot := strings.LastIndex(clean, ".")
	comma := strings.LastIndex(clean, ",")

	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case comma >= 0:
		clean = normalizeSingle(clean, ",")
	case dot >= 0:
		clean = normalizeSingle(clean, ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid value %q", s)
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative value %q", s)
	}

	return d, nil
}

func normalizeSingle(s, sep string) string {
	if strings.Count(s, sep) > 1 || len(s)-strings.LastIndex(s, sep)-1 == 3 {
		return strings.ReplaceAll(s, sep, "")
	}

	return strings.Replace(s, sep, ".", 1)
}
