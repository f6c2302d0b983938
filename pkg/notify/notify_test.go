package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autobarrel/pkg/errors"
)

func TestReportLevels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level Level
	}{
		{"conflict is a warning", errors.Wrapf(errors.ErrWriteConflict, "index.ts"), LevelWarning},
		{"empty folder is a warning", errors.ErrFolderEmpty, LevelWarning},
		{"no matches is a warning", errors.ErrNoMatches, LevelWarning},
		{"invalid target is an error", errors.ErrInvalidTarget, LevelError},
		{"write failure is an error", errors.ErrWriteFailure, LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Recorder{}
			Report(r, tt.err)
			require.Len(t, r.Messages(), 1)
			assert.Equal(t, tt.level, r.Last().Level)
		})
	}
}

func TestReportIncludesHint(t *testing.T) {
	r := &Recorder{}
	Report(r, errors.WithHint(errors.ErrNoMatches, "check include_extensions"))
	assert.True(t, r.Contains(LevelWarning, "check include_extensions"))
	assert.True(t, r.Contains(LevelWarning, "no files matched"))
}

func TestReportNil(t *testing.T) {
	r := &Recorder{}
	Report(r, nil)
	assert.Empty(t, r.Messages())
	assert.Equal(t, Message{}, r.Last())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "success", LevelSuccess.String())
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "error", LevelError.String())
}
