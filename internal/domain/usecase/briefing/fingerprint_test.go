package briefing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	t.Run("ignores label order", func(t *testing.T) {
		a := Fingerprint([]string{"Lages, SC", "Erechim, RS", "Ijui, RS"})
		b := Fingerprint([]string{"Ijui, RS", "Lages, SC", "Erechim, RS"})
		assert.Equal(t, a, b)
	})

	t.Run("weights by position", func(t *testing.T) {
		// "ab" = 1*97 + 2*98, "ba" = 1*98 + 2*97
		assert.Equal(t, 293, Fingerprint([]string{"ab"}))
		assert.Equal(t, 292, Fingerprint([]string{"ba"}))
	})

	t.Run("joins with separator", func(t *testing.T) {
		// "a|b" = 1*97 + 2*124 + 3*98
		assert.Equal(t, 639, Fingerprint([]string{"b", "a"}))
	})

	t.Run("stays below modulus", func(t *testing.T) {
		labels := make([]string, 200)
		for i := range labels {
			labels[i] = "Santo Angelo, RS"
		}
		fp := Fingerprint(labels)
		assert.GreaterOrEqual(t, fp, 0)
		assert.Less(t, fp, 1_000_000)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		labels := []string{"b", "a"}
		Fingerprint(labels)
		assert.Equal(t, []string{"b", "a"}, labels)
	})
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "summary:2:293", CacheKey(2, summaries("ab")))
}

func TestDayName(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skip("timezone database not available")
	}
	// 2025-03-15 01:00 UTC is still Friday 14th in Sao Paulo
	now := time.Date(2025, 3, 15, 1, 0, 0, 0, time.UTC)

	tests := []struct {
		offset   int
		expected string
	}{
		{0, "hoje"},
		{1, "amanhã"},
		{2, "domingo"},
		{3, "segunda-feira"},
		{4, "terça-feira"},
		{5, "quarta-feira"},
		{6, "quinta-feira"},
		{7, "sexta-feira"},
		{8, "sábado"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DayName(now, loc, tt.offset), "offset %d", tt.offset)
	}
}
