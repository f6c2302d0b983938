package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsSentinel(t *testing.T) {
	err := Wrapf(ErrWriteConflict, "%s", "src/index.ts")
	require.Error(t, err)

	assert.True(t, Is(err, ErrWriteConflict))
	assert.False(t, Is(err, ErrWriteFailure))
	assert.Contains(t, err.Error(), "src/index.ts")
	assert.Contains(t, err.Error(), "file already exists")
}

func TestIsWarning(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"folder empty", Wrap(ErrFolderEmpty, "src"), true},
		{"no matches", ErrNoMatches, true},
		{"conflict", Wrap(ErrWriteConflict, "index.ts"), true},
		{"discovery", Mark(New("walk failed"), ErrDiscovery), true},
		{"write failure", Wrap(ErrWriteFailure, "index.ts"), false},
		{"invalid target", ErrInvalidTarget, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWarning(tt.err))
		})
	}
}

func TestHint(t *testing.T) {
	assert.Equal(t, "", Hint(nil))

	err := WithHint(Wrap(ErrNoMatches, "src"), "check files.include_extensions")
	assert.Equal(t, "check files.include_extensions", Hint(err))
	assert.True(t, Is(err, ErrNoMatches))
}

func TestMarkMakesErrorMatchable(t *testing.T) {
	base := New("permission denied")
	marked := Mark(base, ErrDiscovery)

	assert.True(t, Is(marked, ErrDiscovery))
	assert.Equal(t, "permission denied", marked.Error())
}
