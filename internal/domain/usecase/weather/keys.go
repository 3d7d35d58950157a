package weather

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TickerKey is the cache key of the seed-city ticker
const TickerKey = "weather:ticker"

var whitespaceRun = regexp.MustCompile(`\s+`)

// CacheKey builds weather:{city}:{state}:{dayOffset} from lower-cased, trimmed parts with
// whitespace runs replaced by "-".
func CacheKey(city, state string, dayOffset int) string {
	return "weather:" + normalizeKeyPart(city) + ":" + normalizeKeyPart(state) + ":" + strconv.Itoa(dayOffset)
}

func normalizeKeyPart(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}

// DisplayLabel renders "<City>, <UF>" from the same trimmed, case-folded parts CacheKey uses,
// so every spelling that shares a cache entry also shares its label.
func DisplayLabel(city, state string) string {
	name := whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(city)), " ")
	return cases.Title(language.BrazilianPortuguese).String(name) + ", " + strings.ToUpper(strings.TrimSpace(state))
}
