package registry

import (
	"net/url"
	"strings"

	"github.com/samber/lo"

	"github.com/MrSnakeDoc/stashlink/internal/domain"
)

// Registry answers "which website corresponds to this endpoint or label?".
//
// A Registry is immutable once built and safe for concurrent use.
// It is advisory: unknown endpoints still resolve to a derived base URL.
type Registry struct {
	descriptors []domain.EndpointDescriptor
	byBase      map[string]domain.EndpointDescriptor // lowercased base URL -> descriptor
	byLabel     map[string]domain.EndpointDescriptor // lowercased label -> descriptor
	defaultBase string
	skipped     []string
}

// New builds a registry from the presets plus the custom endpoint URLs.
//
// Custom entries whose base URL or label collides with an earlier descriptor are
// ignored (presets always win), which keeps labels unique. An empty
// defaultEndpoint falls back to domain.DefaultEndpoint.
func New(defaultEndpoint string, custom []string) *Registry {
	r := &Registry{
		byBase:  make(map[string]domain.EndpointDescriptor, len(domain.PresetEndpoints)+len(custom)),
		byLabel: make(map[string]domain.EndpointDescriptor, len(domain.PresetEndpoints)+len(custom)),
	}

	for _, preset := range domain.PresetEndpoints {
		r.add(preset)
	}

	for _, endpoint := range lo.Compact(lo.Map(custom, func(s string, _ int) string { return strings.TrimSpace(s) })) {
		d, ok := customDescriptor(endpoint)
		if !ok || !r.add(d) {
			r.skipped = append(r.skipped, endpoint)
		}
	}

	if strings.TrimSpace(defaultEndpoint) == "" {
		defaultEndpoint = domain.DefaultEndpoint
	}
	r.defaultBase = r.ResolveByEndpointURL(defaultEndpoint)

	return r
}

func (r *Registry) add(d domain.EndpointDescriptor) bool {
	baseKey := strings.ToLower(d.BaseURL)
	labelKey := strings.ToLower(d.Label)
	if _, dup := r.byBase[baseKey]; dup {
		return false
	}
	if _, dup := r.byLabel[labelKey]; dup {
		return false
	}
	r.byBase[baseKey] = d
	r.byLabel[labelKey] = d
	r.descriptors = append(r.descriptors, d)
	return true
}

// customDescriptor derives a descriptor from an administrator supplied endpoint URL.
// The label is the lowercased host name. Entries without an http(s) scheme and host are rejected.
func customDescriptor(endpoint string) (domain.EndpointDescriptor, bool) {
	base := Normalize(endpoint)
	u, err := url.Parse(base)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return domain.EndpointDescriptor{}, false
	}
	return domain.EndpointDescriptor{
		Label:    strings.ToLower(u.Hostname()),
		Endpoint: endpoint,
		BaseURL:  base,
		Origin:   domain.OriginCustom,
	}, true
}

// Normalize strips surrounding whitespace, trailing slashes and the API suffix.
// Case is preserved; comparisons lowercase the result.
// Example: "https://StashDB.org/GraphQL/" -> "https://StashDB.org"
func Normalize(endpointURL string) string {
	s := strings.TrimRight(strings.TrimSpace(endpointURL), "/")
	if len(s) >= len(domain.APISuffix) && strings.EqualFold(s[len(s)-len(domain.APISuffix):], domain.APISuffix) {
		s = s[:len(s)-len(domain.APISuffix)]
	}
	return strings.TrimRight(s, "/")
}

// ResolveByEndpointURL returns the website base URL for a graphql endpoint.
// Unknown endpoints resolve to their own normalized form.
func (r *Registry) ResolveByEndpointURL(endpointURL string) string {
	base := Normalize(endpointURL)
	if d, ok := r.byBase[strings.ToLower(base)]; ok {
		return d.BaseURL
	}
	return base
}

// ResolveByLabel returns the website base URL for an instance label.
// Unknown labels resolve to the default base URL.
func (r *Registry) ResolveByLabel(label string) string {
	if d, ok := r.byLabel[strings.ToLower(strings.TrimSpace(label))]; ok {
		return d.BaseURL
	}
	return r.defaultBase
}

// DefaultBaseURL returns the base URL of the configured default endpoint.
func (r *Registry) DefaultBaseURL() string {
	return r.defaultBase
}

// Lookup returns the descriptor registered under label.
func (r *Registry) Lookup(label string) (domain.EndpointDescriptor, bool) {
	d, ok := r.byLabel[strings.ToLower(strings.TrimSpace(label))]
	return d, ok
}

// Descriptors returns presets followed by custom descriptors, in load order.
func (r *Registry) Descriptors() []domain.EndpointDescriptor {
	out := make([]domain.EndpointDescriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Skipped returns the custom endpoints that could not be registered
// (unparsable, or colliding with an existing descriptor).
func (r *Registry) Skipped() []string {
	return append([]string(nil), r.skipped...)
}
