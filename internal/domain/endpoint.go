package domain

// Origin tells where an endpoint descriptor comes from.
type Origin string

const (
	OriginPreset Origin = "preset"
	OriginCustom Origin = "custom"
)

// EndpointDescriptor describes one Stash-Box instance.
type EndpointDescriptor struct {
	// Label is the short instance name used by label-prefixed identifiers.
	// Example: StashDB
	Label string

	// Endpoint is the graphql endpoint as configured.
	// Example: https://stashdb.org/graphql
	Endpoint string

	// BaseURL is the human-facing website, without the API suffix.
	// Example: https://stashdb.org
	BaseURL string

	Origin Origin
}

// DefaultEndpoint is used when no default endpoint is configured.
const DefaultEndpoint = "https://stashdb.org/graphql"

// PresetEndpoints are the well-known Stash-Box instances.
// They are always part of a registry, whatever the administrator configured.
var PresetEndpoints = []EndpointDescriptor{
	{Label: "StashDB", Endpoint: "https://stashdb.org/graphql", BaseURL: "https://stashdb.org", Origin: OriginPreset},
	{Label: "FansDB", Endpoint: "https://fansdb.cc/graphql", BaseURL: "https://fansdb.cc", Origin: OriginPreset},
	{Label: "TPDB", Endpoint: "https://theporndb.net/graphql", BaseURL: "https://theporndb.net", Origin: OriginPreset},
	{Label: "PMVStash", Endpoint: "https://pmvstash.org/graphql", BaseURL: "https://pmvstash.org", Origin: OriginPreset},
	{Label: "JAVStash", Endpoint: "https://javstash.org/graphql", BaseURL: "https://javstash.org", Origin: OriginPreset},
}
