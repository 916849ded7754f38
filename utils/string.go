package utils

// FormatBoolean renders a flag as one of two marks, e.g. "Y" or "" in reports.
func FormatBoolean(set bool, yes, no string) string {
	if set {
		return yes
	}
	return no
}
