package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/stashlink/internal/utils"
)

// Loader handles loading and parsing of the settings file.
type Loader struct {
	filePath string
	now      func() time.Time
}

// NewLoader creates a new settings loader.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
		now:      time.Now,
	}
}

// Path returns the settings file path.
func (l *Loader) Path() string { return l.filePath }

// Load reads, parses and validates the settings file.
// A missing file is reported with an error wrapping os.ErrNotExist.
func (l *Loader) Load() (*Snapshot, error) {
	f, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer utils.Close(f)

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	// Expand ${VAR} references so endpoints can be injected from the environment.
	data = expandVariables(data)

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse settings yaml %s: %w", l.filePath, err)
	}

	snap, err := Build(file, SourceFile, l.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.filePath, err)
	}
	return snap, nil
}

var variablePattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandVariables replaces ${VAR} with the value of the environment variable VAR.
// Unset variables expand to an empty string.
// Example: "defaultEndpoint: ${STASH_URL}" -> "defaultEndpoint: https://stashdb.org/graphql"
func expandVariables(data []byte) []byte {
	return variablePattern.ReplaceAllFunc(data, func(m []byte) []byte {
		name := variablePattern.FindSubmatch(m)[1]
		return []byte(os.Getenv(string(name)))
	})
}
