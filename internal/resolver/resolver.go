package resolver

import (
	"strings"

	"github.com/samber/mo"

	"github.com/MrSnakeDoc/stashlink/internal/domain"
)

// scenePath is the record-lookup path shared by every Stash-Box instance.
const scenePath = "/scenes/"

// Endpoints is the subset of the endpoint registry the resolver needs.
type Endpoints interface {
	ResolveByEndpointURL(endpointURL string) string
	ResolveByLabel(label string) string
	DefaultBaseURL() string
}

// Resolver turns parsed identifiers into absolute URLs.
type Resolver struct {
	endpoints Endpoints
}

func New(endpoints Endpoints) *Resolver {
	return &Resolver{endpoints: endpoints}
}

// Resolve returns the URL for p, or None when no link can be built.
func (r *Resolver) Resolve(p domain.ParsedIdentifier) mo.Option[string] {
	switch p.Format {
	case domain.FormatFullURL:
		return mo.Some(p.Raw)
	case domain.FormatEndpointPrefixed:
		return sceneURL(r.endpoints.ResolveByEndpointURL(p.EndpointURL), p.RecordID)
	case domain.FormatLabelPrefixed:
		return sceneURL(r.endpoints.ResolveByLabel(p.Label), p.RecordID)
	case domain.FormatBare:
		// Bare ids predate multi-instance support and always target the default endpoint.
		return sceneURL(r.endpoints.DefaultBaseURL(), p.RecordID)
	default:
		return mo.None[string]()
	}
}

// ResolveRaw parses and resolves a stored identifier value.
func (r *Resolver) ResolveRaw(raw string) mo.Option[string] {
	return r.Resolve(domain.ParseIdentifier(raw))
}

// sceneURL builds "{base}/scenes/{id}". The id is used as stored, without escaping.
func sceneURL(base, id string) mo.Option[string] {
	if id == "" || base == "" {
		return mo.None[string]()
	}
	return mo.Some(strings.TrimRight(base, "/") + scenePath + id)
}
