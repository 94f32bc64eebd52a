package printer

import "fmt"

// FormatBytes returns a human-readable size string, used for the captured
// stream sizes in history listings.
// Examples: "0 B", "212 B", "4.5 KB", "1.2 MB".
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}

	value := float64(bytes)
	unit := ""
	for _, u := range []string{"KB", "MB", "GB", "TB"} {
		value /= 1024
		unit = u
		if value < 1024 {
			break
		}
	}

	return fmt.Sprintf("%.1f %s", value, unit)
}
