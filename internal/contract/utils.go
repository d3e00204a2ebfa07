package contract

import (
	"os"
	"strings"

	"github.com/fatih/color"
)

// Fragmentation label constants.
const (
	CriticalValue = "Critical" // score >= 8
	HighValue     = "High"     // score >= 5
	ModerateValue = "Moderate" // score >= 3
	LowValue      = "Low"
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)
	HighColor     = color.New(color.FgMagenta, color.Bold)
	ModerateColor = color.New(color.FgYellow)
	LowColor      = color.New(color.FgCyan)
)

// GetPlainLabel returns a plain text label indicating how fragmented a
// person is based on their score. This is the core logic used for CSV,
// JSON, and table printing.
func GetPlainLabel(score int) string {
	switch {
	case score >= 8:
		return CriticalValue
	case score >= 5:
		return HighValue
	case score >= 3:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, then applies the color.
func GetColorLabel(score int) string {
	text := GetPlainLabel(score)
	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output based on
// the provided file path, falling back to stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateText shortens a string to at most max runes, appending an
// ellipsis when something was cut.
func TruncateText(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// NormalizeKey lowercases a column name and strips everything that is not
// a letter or digit, so mapped column names match despite accents being
// flattened, underscores, or case differences.
func NormalizeKey(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
