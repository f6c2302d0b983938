package version

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"

	"autobarrel/pkg/errors"
)

// Notice is what to tell the user about the running version.
type Notice int

const (
	NoticeNone Notice = iota
	NoticeWelcome
	NoticeUpgraded
)

// State is persisted between runs.
type State struct {
	LastVersion string    `toml:"last_version"`
	LastSeen    time.Time `toml:"last_seen"`
}

// DefaultStatePath returns the state file under the user config dir.
func DefaultStatePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate user config directory")
	}
	return filepath.Join(dir, Name, "state.toml"), nil
}

// LoadState reads path. A missing file yields an empty state.
func LoadState(path string) (State, error) {
	var s State
	if _, err := toml.DecodeFile(path, &s); err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, errors.Wrapf(err, "failed to read state %s", path)
	}
	return s, nil
}

// SaveState writes s to path, creating its directory.
func SaveState(path string, s State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create state %s", path)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return errors.Wrapf(err, "failed to write state %s", path)
	}
	return nil
}

// Check compares current with the version recorded at statePath and
// records current. The first run yields NoticeWelcome, a newer version
// NoticeUpgraded. Versions that are not semver are never announced.
func Check(statePath, current string, now time.Time, logger *zap.Logger) (Notice, string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cur, err := semver.NewVersion(current)
	if err != nil {
		logger.Debug("Skipping version notice for non-semver build", zap.String("version", current))
		return NoticeNone, "", nil
	}

	state, err := LoadState(statePath)
	if err != nil {
		return NoticeNone, "", err
	}
	previous := state.LastVersion

	notice := NoticeNone
	switch {
	case previous == "":
		notice = NoticeWelcome
	default:
		prev, err := semver.NewVersion(previous)
		if err != nil || cur.GreaterThan(prev) {
			notice = NoticeUpgraded
		}
	}

	if previous != cur.String() {
		if err := SaveState(statePath, State{LastVersion: cur.String(), LastSeen: now}); err != nil {
			return NoticeNone, previous, err
		}
		logger.Debug("Recorded running version",
			zap.String("previous", previous),
			zap.String("current", cur.String()))
	}

	return notice, previous, nil
}

// Message returns the user-facing text for n, or "".
func Message(n Notice, current string) string {
	switch n {
	case NoticeWelcome:
		return "Welcome to " + Name + " version " + current + "!"
	case NoticeUpgraded:
		return Name + " has been updated to version " + current + ". Check out the release notes."
	default:
		return ""
	}
}
