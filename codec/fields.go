package codec

import (
	"errors"
	"fmt"
	"strings"
)

// Delimiter separates the fields of one record line.
const Delimiter = "|"

// ErrMalformedLine is returned when a line has fewer delimiters than its record type needs.
var ErrMalformedLine = errors.New("malformed record line")

// Fields splits line into exactly n fields: the text between the first n-1 delimiters,
// and everything after the last of them as the final field.
func Fields(line string, n int) ([]string, error) {
	fields := strings.SplitN(line, Delimiter, n)
	if len(fields) < n {
		return nil, fmt.Errorf("%w: want %d fields, found %d", ErrMalformedLine, n, len(fields))
	}

	return fields, nil
}

func join(fields ...string) string {
	return strings.Join(fields, Delimiter)
}
