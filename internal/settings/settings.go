package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/stashlink/internal/domain"
	"github.com/MrSnakeDoc/stashlink/internal/utils"
)

// Source records where a snapshot was built from.
const (
	SourceFile     = "file"
	SourceRedis    = "redis"
	SourceDefaults = "defaults"
)

// File is the administrator settings file schema.
type File struct {
	DefaultEndpoint string `yaml:"defaultEndpoint"`
	CustomEndpoints string `yaml:"customEndpoints"` // comma separated graphql endpoints

	EnableStashDB  bool `yaml:"enableStashDB"`
	EnableFansDB   bool `yaml:"enableFansDB"`
	EnableTPDB     bool `yaml:"enableTPDB"`
	EnablePMVStash bool `yaml:"enablePMVStash"`
	EnableJAVStash bool `yaml:"enableJAVStash"`
}

// Snapshot is one immutable, validated view of the settings.
//
// Snapshots are never modified after Build; a reload produces a new one.
type Snapshot struct {
	DefaultEndpoint string          `json:"default_endpoint" validate:"omitempty,http_url"`
	CustomEndpoints []string        `json:"custom_endpoints"` // unusable entries are skipped by the registry
	Flags           map[string]bool `json:"flags"`
	Source          string          `json:"source"`
	LoadedAt        time.Time       `json:"loaded_at"`
}

var validate = validator.New()

// Build validates a settings file and compiles it into a snapshot.
func Build(f File, source string, now time.Time) (*Snapshot, error) {
	s := &Snapshot{
		DefaultEndpoint: strings.TrimSpace(f.DefaultEndpoint),
		CustomEndpoints: utils.SplitList(f.CustomEndpoints),
		Flags: map[string]bool{
			"enableStashDB":  f.EnableStashDB,
			"enableFansDB":   f.EnableFansDB,
			"enableTPDB":     f.EnableTPDB,
			"enablePMVStash": f.EnablePMVStash,
			"enableJAVStash": f.EnableJAVStash,
		},
		Source:   source,
		LoadedAt: now,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Defaults returns the snapshot used when nothing is configured:
// default endpoint StashDB, no custom endpoints, every known provider disabled.
func Defaults(now time.Time) *Snapshot {
	s, _ := Build(File{}, SourceDefaults, now)
	return s
}

// Validate checks the snapshot fields.
func (s *Snapshot) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// EffectiveDefaultEndpoint returns the configured default endpoint or the built-in one.
func (s *Snapshot) EffectiveDefaultEndpoint() string {
	if s.DefaultEndpoint == "" {
		return domain.DefaultEndpoint
	}
	return s.DefaultEndpoint
}
