package linker

import (
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/MrSnakeDoc/stashlink/internal/capability"
	"github.com/MrSnakeDoc/stashlink/internal/domain"
	"github.com/MrSnakeDoc/stashlink/internal/registry"
	"github.com/MrSnakeDoc/stashlink/internal/resolver"
	"github.com/MrSnakeDoc/stashlink/internal/settings"
)

// Linker wires the registry, resolver and policy of one settings snapshot.
// It is immutable and safe for concurrent use.
type Linker struct {
	snapshot *settings.Snapshot
	registry *registry.Registry
	resolver *resolver.Resolver
	policy   *capability.Policy
	links    []*Link
}

// New builds a linker for a settings snapshot.
func New(snap *settings.Snapshot) *Linker {
	reg := registry.New(snap.EffectiveDefaultEndpoint(), snap.CustomEndpoints)
	l := &Linker{
		snapshot: snap,
		registry: reg,
		resolver: resolver.New(reg),
		policy:   capability.New(snap.Flags),
	}
	l.links = lo.Map(domain.Providers, func(p domain.Provider, _ int) *Link {
		return &Link{provider: p, linker: l}
	})
	return l
}

// Snapshot returns the settings the linker was built from.
func (l *Linker) Snapshot() *settings.Snapshot { return l.snapshot }

// Registry returns the endpoint registry.
func (l *Linker) Registry() *registry.Registry { return l.registry }

// Links returns one host-contract instance per provider, in table order.
func (l *Linker) Links() []*Link {
	return append([]*Link(nil), l.links...)
}

// Link returns the instance for a provider key (case-insensitive).
func (l *Linker) Link(providerKey string) (*Link, bool) {
	return lo.Find(l.links, func(link *Link) bool {
		return strings.EqualFold(link.provider.Key, strings.TrimSpace(providerKey))
	})
}

// Result is one resolved link for a record.
type Result struct {
	Provider string
	URL      string
	Format   domain.IdentifierFormat
}

// LinksFor returns every link that applies to record, in provider table order.
func (l *Linker) LinksFor(record domain.MediaRecord) []Result {
	var out []Result
	for _, link := range l.links {
		if !link.Supports(record) {
			continue
		}
		parsed := domain.ParseIdentifier(record.ProviderID(link.provider.Key))
		if u, ok := l.resolver.Resolve(parsed).Get(); ok {
			out = append(out, Result{Provider: link.provider.Key, URL: u, Format: parsed.Format})
		}
	}
	return out
}

// Link is the contract exposed to the host for one provider.
type Link struct {
	provider domain.Provider
	linker   *Linker
}

// Provider returns the provider table entry.
func (k *Link) Provider() domain.Provider { return k.provider }

// CapabilityKey returns the provider key this instance matches.
func (k *Link) CapabilityKey() string { return k.provider.Key }

// Enabled reports the provider's enabled flag in the snapshot.
func (k *Link) Enabled() bool { return k.linker.policy.Enabled(k.provider.Key) }

// Supports reports whether the link applies to record.
func (k *Link) Supports(record domain.MediaRecord) bool {
	return k.linker.policy.Supports(k.provider.Key, record)
}

// ResolveURL returns the external URL for record, or None.
func (k *Link) ResolveURL(record domain.MediaRecord) mo.Option[string] {
	if !k.Supports(record) {
		return mo.None[string]()
	}
	return k.linker.resolver.ResolveRaw(record.ProviderID(k.provider.Key))
}

// WebsiteBase returns the base URL shown in UI chrome.
// The generic provider uses the configured default endpoint.
func (k *Link) WebsiteBase() string {
	if d, ok := k.linker.registry.Lookup(k.provider.PresetLabel); ok && k.provider.PresetLabel != "" {
		return d.BaseURL
	}
	return k.linker.registry.DefaultBaseURL()
}
