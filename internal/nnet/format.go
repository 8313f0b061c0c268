package nnet

import (
	"strconv"
	"strings"
)

// TimestampLayout is the layout of the first comment line.
const TimestampLayout = "2006-01-02 15:04:05"

// FormatFloat returns the shortest decimal representation of v that
// round-trips at the given bit size (32 or 64). The result always contains a
// decimal point or an exponent, so integral values print as "1.0".
func FormatFloat(v float64, bitSize int) string {
	s := strconv.FormatFloat(v, 'g', -1, bitSize)
	if strings.ContainsAny(s, ".eEIN") {
		return s
	}
	return s + ".0"
}

func joinFloats[T ~float32 | ~float64](values []T, bitSize int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatFloat(float64(v), bitSize)
	}
	return strings.Join(parts, ",")
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// splitFields splits a comma separated line. A trailing comma, common in
// files produced by other tools, is ignored.
func splitFields(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimSuffix(line, ",")
	if line == "" {
		return nil
	}
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}
