package briefing

import (
	"fmt"
	"sort"
	"strings"

	"weather-api/internal/domain/entity"
)

const fingerprintModulus = 1_000_000

// Fingerprint is a position-weighted rune sum of the sorted labels joined by "|", modulo 1,000,000.
// It does not depend on the order of labels.
func Fingerprint(labels []string) int {
	sorted := append([]string(nil), labels...)
	sort.Strings(sorted)

	var sum int64
	for i, r := range []rune(strings.Join(sorted, "|")) {
		sum = (sum + int64(i+1)*int64(r)) % fingerprintModulus
	}
	return int(sum)
}

// CacheKey builds summary:{dayOffset}:{fingerprint}
func CacheKey(dayOffset int, summaries []entity.DailyForecastSummary) string {
	labels := make([]string, len(summaries))
	for i, s := range summaries {
		labels[i] = s.Label
	}
	return fmt.Sprintf("summary:%d:%d", dayOffset, Fingerprint(labels))
}
