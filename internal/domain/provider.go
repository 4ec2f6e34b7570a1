package domain

import (
	"slices"
	"strings"
)

// Provider is one row of the provider table.
//
// The entity kinds a provider can link are a property of what the remote
// service models and are not configurable.
type Provider struct {
	// Key is the provider key found in MediaRecord.ProviderIDs.
	Key string

	// Name is the display name.
	Name string

	// PresetLabel points at the preset endpoint backing this provider.
	// Empty for the generic multi-instance provider.
	PresetLabel string

	// Flag is the settings key enabling this provider.
	// Empty means the provider cannot be disabled.
	Flag string

	// Kinds is the entity-kind allow-list.
	Kinds []EntityKind
}

const GenericProviderKey = "stashbox"

// Providers is the provider table: one entry per known instance plus the generic one.
var Providers = []Provider{
	{Key: "stashdb", Name: "StashDB", PresetLabel: "StashDB", Flag: "enableStashDB", Kinds: []EntityKind{KindMovie, KindCollection, KindPerson}},
	{Key: "fansdb", Name: "FansDB", PresetLabel: "FansDB", Flag: "enableFansDB", Kinds: []EntityKind{KindMovie, KindCollection, KindPerson}},
	{Key: "tpdb", Name: "ThePornDB", PresetLabel: "TPDB", Flag: "enableTPDB", Kinds: []EntityKind{KindMovie, KindCollection, KindPerson}},
	{Key: "pmvstash", Name: "PMVStash", PresetLabel: "PMVStash", Flag: "enablePMVStash", Kinds: []EntityKind{KindMovie}},
	{Key: "javstash", Name: "JAVStash", PresetLabel: "JAVStash", Flag: "enableJAVStash", Kinds: []EntityKind{KindMovie}},
	{Key: GenericProviderKey, Name: "Stash-Box", Kinds: []EntityKind{KindMovie}},
}

// LookupProvider finds a provider by key (case-insensitive).
func LookupProvider(key string) (Provider, bool) {
	for _, p := range Providers {
		if strings.EqualFold(p.Key, key) {
			return p, true
		}
	}
	return Provider{}, false
}

// Allows reports whether kind is in the provider's allow-list.
func (p Provider) Allows(kind EntityKind) bool {
	return slices.Contains(p.Kinds, kind)
}
