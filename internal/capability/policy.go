package capability

import (
	"github.com/MrSnakeDoc/stashlink/internal/domain"
)

// Policy decides whether a link is offered for a provider and a record.
type Policy struct {
	flags map[string]bool // settings flag name -> enabled
}

// New builds a policy from the enable flags of a settings snapshot.
// The map is copied; later changes to flags have no effect.
func New(flags map[string]bool) *Policy {
	p := &Policy{flags: make(map[string]bool, len(flags))}
	for k, v := range flags {
		p.flags[k] = v
	}
	return p
}

// Enabled reports the enabled flag of a provider.
// Known providers are disabled unless their flag is set; providers without a
// flag (generic, custom or unknown keys) are always enabled.
func (p *Policy) Enabled(providerKey string) bool {
	provider, ok := domain.LookupProvider(providerKey)
	if !ok || provider.Flag == "" {
		return true
	}
	return p.flags[provider.Flag]
}

// Allows reports whether the provider models the given entity kind.
// Unknown provider keys use the generic provider's allow-list.
func (p *Policy) Allows(providerKey string, kind domain.EntityKind) bool {
	provider, ok := domain.LookupProvider(providerKey)
	if !ok {
		provider, _ = domain.LookupProvider(domain.GenericProviderKey)
	}
	return provider.Allows(kind)
}

// Supports reports whether a link for providerKey applies to record.
func (p *Policy) Supports(providerKey string, record domain.MediaRecord) bool {
	return p.Enabled(providerKey) &&
		p.Allows(providerKey, record.Kind) &&
		record.ProviderID(providerKey) != ""
}
