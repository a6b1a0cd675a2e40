package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// Tokens of a DMS coordinate: numeric chunks (comma or period decimals) and
// hemisphere letters, including the Portuguese L(este) and O(este).
var coordTokenRe = regexp.MustCompile(`[\d,.]+|[NSLOEWnsloew]`)

// ParseCoordinate accepts either a plain signed decimal ("-27.123456", comma
// decimals allowed) or a degrees/minutes/seconds string with a trailing
// hemisphere letter ("27°35'12.5\"S"). South and west flip the sign. It
// returns nil when nothing usable can be extracted; missing coordinates are a
// documented lossy fallback, not an error.
func ParseCoordinate(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	tokens := coordTokenRe.FindAllString(raw, -1)
	if len(tokens) >= 4 {
		degrees, errD := parseDecimal(tokens[0])
		minutes, errM := parseDecimal(tokens[1])
		seconds, errS := parseDecimal(tokens[2])
		if errD == nil && errM == nil && errS == nil {
			dd := degrees + minutes/60 + seconds/3600
			switch strings.ToUpper(tokens[3]) {
			case "S", "W", "O":
				dd = -dd
			}
			return &dd
		}
	}

	if dd, err := parseDecimal(raw); err == nil {
		return &dd
	}
	return nil
}

func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}
