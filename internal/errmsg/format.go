// Package errmsg formats the single user-visible error message shown by the dashboard.
package errmsg

import "fmt"

// Op names an operation that can fail.
type Op string

const (
	// Backend operations
	OpFetchSongs   Op = "fetch songs"
	OpSearchSongs  Op = "search songs"
	OpUpdateRating Op = "update rating"

	// Local operations
	OpExportCSV  Op = "export songs"
	OpLoadCache  Op = "load song cache"
	OpSyncCache  Op = "sync song cache"
	OpLoadConfig Op = "load configuration"
	OpReadBatch  Op = "read ratings file"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message naming the subject of the operation.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
