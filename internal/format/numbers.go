package format

import "fmt"

// TruncateDigits shortens a long digit string to its first and last edges
// characters around an ellipsis. A leading minus sign is kept and not counted.
// Strings of at most limit characters are returned unchanged.
func TruncateDigits(s string, limit, edges int) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	if len(s) <= limit || 2*edges >= len(s) {
		return sign + s
	}
	return sign + s[:edges] + "..." + s[len(s)-edges:]
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
