package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"autobarrel/pkg/errors"
)

const fileHeader = `# autobarrel configuration
# Every key can be overridden with an AUTOBARREL_ environment variable,
# e.g. AUTOBARREL_FILES_DETECT_EXPORTS=true.

`

// Defaults returns the settings used when nothing is configured.
func Defaults() *Settings {
	v := viper.New()
	SetDefaults(v)

	var s Settings
	// Unmarshalling plain defaults cannot fail.
	_ = v.Unmarshal(&s)
	return &s
}

// Encode renders settings as a TOML config file.
func Encode(s *Settings) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(s); err != nil {
		return nil, errors.Wrap(err, "failed to encode settings")
	}
	return buf.Bytes(), nil
}

// WriteDefault writes the default config into dir and returns its path.
// An existing file is never replaced.
func WriteDefault(dir string) (string, error) {
	data, err := Encode(Defaults())
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, DefaultFileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return "", errors.Wrapf(errors.ErrWriteConflict, "%s", path)
		}
		return "", errors.Mark(errors.Wrapf(err, "failed to create %s", path), errors.ErrWriteFailure)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return "", errors.Mark(errors.Wrapf(err, "failed to write %s", path), errors.ErrWriteFailure)
	}
	return path, nil
}
