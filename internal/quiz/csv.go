package quiz

import (
	"regexp"
	"strings"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// ParseLine splits one line of a spreadsheet CSV export into fields.
//
// Commas inside double quotes do not split. Every field is trimmed, one
// wrapping pair of quotes is removed and doubled quotes collapse to one.
// Malformed quoting is tolerated: an unterminated quote runs to the end of
// the line.
func ParseLine(line string) []string {
	var fields []string
	start := 0
	inQuotes := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				fields = append(fields, unquote(line[start:i]))
				start = i + 1
			}
		}
	}
	return append(fields, unquote(line[start:]))
}

func unquote(field string) string {
	field = strings.TrimSpace(field)
	if len(field) >= 2 && strings.HasPrefix(field, `"`) && strings.HasSuffix(field, `"`) {
		field = strings.ReplaceAll(field[1:len(field)-1], `""`, `"`)
	}
	return field
}

// ParseRows parses every line of a CSV blob. Row i corresponds to line i, so
// blank lines come back as a single empty field.
func ParseRows(text string) [][]string {
	lines := lineBreak.Split(text, -1)
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, ParseLine(l))
	}
	return rows
}
