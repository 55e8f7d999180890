package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DotEnvFiles are read in order. A key set by an earlier file, or by the
// process environment, is never overwritten, which lets .env.local carry
// a developer's Steam key on top of a shared .env.
var DotEnvFiles = []string{".env.local", ".env"}

// LoadDotEnv loads files (DotEnvFiles when none are given) into the
// process environment and returns the ones it found. Missing files are
// skipped; a file that exists but cannot be parsed is an error.
func LoadDotEnv(files ...string) ([]string, error) {
	if len(files) == 0 {
		files = DotEnvFiles
	}

	var loaded []string
	for _, f := range files {
		err := godotenv.Load(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return loaded, fmt.Errorf("failed to load %s: %w", f, err)
		}
		loaded = append(loaded, f)
	}
	return loaded, nil
}
