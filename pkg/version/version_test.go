package version

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "1.2.3",
		GitCommit: "abcdefg",
		BuildTime: "2024-04-27T15:04:05Z",
		GoVersion: "go1.24.6",
		Platform:  "linux/amd64",
	}
	assert.Equal(t,
		"autobarrel version 1.2.3 (commit: abcdefg) built at 2024-04-27T15:04:05Z with go1.24.6 on linux/amd64",
		info.String())

	assert.True(t, strings.HasPrefix(Get().String(), "autobarrel version "))
}

func TestCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autobarrel", "state.toml")
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	logger := zaptest.NewLogger(t)

	notice, prev, err := Check(path, "1.0.0", now, logger)
	require.NoError(t, err)
	assert.Equal(t, NoticeWelcome, notice)
	assert.Empty(t, prev)

	state, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", state.LastVersion)
	assert.True(t, now.Equal(state.LastSeen))

	notice, _, err = Check(path, "1.0.0", now, logger)
	require.NoError(t, err)
	assert.Equal(t, NoticeNone, notice)

	notice, prev, err = Check(path, "v1.1.0", now, logger)
	require.NoError(t, err)
	assert.Equal(t, NoticeUpgraded, notice)
	assert.Equal(t, "1.0.0", prev)

	notice, _, err = Check(path, "1.0.5", now, logger)
	require.NoError(t, err)
	assert.Equal(t, NoticeNone, notice, "a downgrade is recorded silently")
}

func TestCheckDevBuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")

	notice, _, err := Check(path, "dev", time.Now(), zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, NoticeNone, notice)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadStateCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, os.WriteFile(path, []byte("last_version = ["), 0644))

	_, err := LoadState(path)
	assert.Error(t, err)
}

func TestMessage(t *testing.T) {
	assert.Contains(t, Message(NoticeWelcome, "1.0.0"), "Welcome")
	assert.Contains(t, Message(NoticeUpgraded, "1.1.0"), "1.1.0")
	assert.Empty(t, Message(NoticeNone, "1.0.0"))
}
