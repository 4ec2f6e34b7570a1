package domain

import (
	"fmt"
	"strings"
)

// EntityKind is the kind of media entity a record describes.
type EntityKind string

const (
	KindMovie      EntityKind = "movie"
	KindSeries     EntityKind = "series"
	KindEpisode    EntityKind = "episode"
	KindCollection EntityKind = "collection"
	KindPerson     EntityKind = "person"
)

// EntityKinds lists every known entity kind.
var EntityKinds = []EntityKind{KindMovie, KindSeries, KindEpisode, KindCollection, KindPerson}

// ParseEntityKind maps a user supplied kind name ("Movie", "person", ...) to an EntityKind.
func ParseEntityKind(s string) (EntityKind, error) {
	k := EntityKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range EntityKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown entity kind: %q", s)
}

// MediaRecord is the host's view of a media item.
//
// It is owned by the host (media server) and is never modified here.
type MediaRecord struct {
	// Kind is the entity kind of the record.
	Kind EntityKind

	// ProviderIDs maps a provider key (ex: "stashdb") to the stored identifier value.
	ProviderIDs map[string]string
}

// ProviderID returns the trimmed identifier stored for providerKey.
// Provider keys are matched case-insensitively, as sidecar writers disagree on casing.
func (r MediaRecord) ProviderID(providerKey string) string {
	if v, ok := r.ProviderIDs[providerKey]; ok {
		return strings.TrimSpace(v)
	}
	for k, v := range r.ProviderIDs {
		if strings.EqualFold(k, providerKey) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
