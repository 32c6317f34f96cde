package errmsg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpFetchSongs,
			err:      nil,
			expected: "",
		},
		{
			name:     "fetch songs",
			op:       OpFetchSongs,
			err:      errors.New("connection refused"),
			expected: "Failed to fetch songs: connection refused",
		},
		{
			name:     "search songs",
			op:       OpSearchSongs,
			err:      errors.New("status 500"),
			expected: "Failed to search songs: status 500",
		},
		{
			name:     "update rating",
			op:       OpUpdateRating,
			err:      errors.New("Song not found"),
			expected: "Failed to update rating: Song not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.op, tt.err))
		})
	}
}

func TestFormatWith(t *testing.T) {
	err := errors.New("timeout")

	assert.Empty(t, FormatWith(OpSearchSongs, "hello", nil))
	assert.Equal(t, "Failed to search songs 'hello': timeout", FormatWith(OpSearchSongs, "hello", err))
	assert.Equal(t, "Failed to search songs: timeout", FormatWith(OpSearchSongs, "", err), "empty context falls back to Format")
}
