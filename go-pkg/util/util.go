package util

// RemoveEmptyStringFromSlice drops empty strings from a slice.
func RemoveEmptyStringFromSlice(slice []string) []string {
	out := make([]string, 0, len(slice))
	for _, item := range slice {
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
