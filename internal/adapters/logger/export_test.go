// export_test.go exports private functions for white-box testing.
package logger

// ErrorEntry exposes the fields of errorEntry to the external test package.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// CollectErrorEntries exports collectErrorEntries.
func CollectErrorEntries(err error) []ErrorEntry {
	entries := collectErrorEntries(err)
	out := make([]ErrorEntry, len(entries))
	for i, e := range entries {
		out[i] = ErrorEntry{Message: e.message, Metadata: e.metadata}
	}
	return out
}
