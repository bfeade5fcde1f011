package apitest

import (
	"fmt"
	"strconv"
	"strings"
)

// parseCents reads a decimal price string like "19.99" into cents. Seeded
// prices are trusted; malformed input counts as zero.
func parseCents(price string) int64 {
	whole, frac, _ := strings.Cut(strings.TrimSpace(price), ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0
	}
	if frac == "" {
		return units * 100
	}
	if len(frac) > 2 {
		frac = frac[:2]
	}
	for len(frac) < 2 {
		frac += "0"
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return units * 100
	}
	return units*100 + cents
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
