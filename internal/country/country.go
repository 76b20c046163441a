// Package country renders emoji flags for chess.com country codes.
package country

import "strings"

// UnknownFlag is returned for codes that cannot be rendered.
const UnknownFlag = "\U0001F3F3️" // white flag

// customFlags covers the non-ISO codes chess.com assigns to regions
// without their own alpha-2 entry.
var customFlags = map[string]string{
	"XA": "\U0001F1EE\U0001F1E8",                                             // Canary Islands
	"XB": "\U0001F1EA\U0001F1F8",                                             // Basque Country
	"XC": "\U0001F1EA\U0001F1F8",                                             // Catalonia
	"XE": "\U0001F3F4\U000E0067\U000E0062\U000E0065\U000E006E\U000E0067\U000E007F", // England
	"XG": "\U0001F1EA\U0001F1F8",                                             // Galicia
	"XK": "\U0001F1FD\U0001F1F0",                                             // Kosovo
	"XP": "\U0001F1F5\U0001F1F8",                                             // Palestine
	"XS": "\U0001F3F4\U000E0067\U000E0062\U000E0073\U000E0063\U000E0074\U000E007F", // Scotland
	"XW": "\U0001F3F4\U000E0067\U000E0062\U000E0077\U000E006C\U000E0073\U000E007F", // Wales
	"XX": UnknownFlag, // International
}

// Flag converts a two-letter country code into its emoji flag. Custom
// chess.com codes take precedence over the standard regional-indicator
// construction. Codes that are not two ASCII letters yield UnknownFlag.
func Flag(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))

	if flag, ok := customFlags[code]; ok {
		return flag
	}

	if len(code) != 2 {
		return UnknownFlag
	}

	runes := make([]rune, 0, 2)
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return UnknownFlag
		}
		runes = append(runes, 0x1F1E6+c-'A')
	}

	return string(runes)
}

// CodeFromURL extracts the country code from a chess.com country endpoint
// URL such as "https://api.chess.com/pub/country/NO". An empty string is
// returned when the URL carries no code.
func CodeFromURL(u string) string {
	u = strings.TrimRight(strings.TrimSpace(u), "/")
	if u == "" {
		return ""
	}
	if idx := strings.LastIndex(u, "/"); idx != -1 {
		u = u[idx+1:]
	}
	return strings.ToUpper(u)
}
