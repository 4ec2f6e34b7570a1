package domain

import (
	"fmt"
	"strings"
)

// IdentifierFormat tags the encoding a stored identifier was written in.
type IdentifierFormat int

const (
	FormatInvalid IdentifierFormat = iota
	FormatFullURL
	FormatEndpointPrefixed
	FormatLabelPrefixed
	FormatBare
)

func (f IdentifierFormat) String() string {
	switch f {
	case FormatFullURL:
		return "full_url"
	case FormatEndpointPrefixed:
		return "endpoint_prefixed"
	case FormatLabelPrefixed:
		return "label_prefixed"
	case FormatBare:
		return "bare"
	default:
		return "invalid"
	}
}

const (
	endpointSeparator = "|"
	labelSeparator    = ";"
)

// APISuffix is the path segment every Stash-Box graphql endpoint ends with.
const APISuffix = "/graphql"

// ParsedIdentifier is a stored identifier decoded into one of its known formats.
// Only the fields relevant to Format are set.
type ParsedIdentifier struct {
	Format IdentifierFormat

	// Raw is the trimmed input value.
	Raw string

	// EndpointURL is the graphql endpoint of an endpoint-prefixed value.
	EndpointURL string

	// Label is the short instance label of a label-prefixed value.
	Label string

	// RecordID is the remote record identifier (empty for full URLs).
	RecordID string
}

// ParseIdentifier decodes a stored identifier value.
//
// Formats are recognized in this order:
//   - "https://stashdb.org/graphql|abc"     -> endpoint prefixed (graphql endpoint, then a plain id)
//   - "https://stashdb.org/scenes/abc"      -> any other URL is kept verbatim, even with '|' or ';'
//   - "stash.example.org/graphql|abc"       -> endpoint prefixed
//   - "StashDB;abc"                         -> label prefixed (split on the first ';' only)
//   - "abc"                                 -> bare id against the default endpoint
//
// A value carrying a delimiter whose parts are not both non-empty is invalid.
func ParseIdentifier(raw string) ParsedIdentifier {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ParsedIdentifier{Format: FormatInvalid}
	}

	if isFullURL(raw) {
		if endpoint, id, ok := splitEndpointPrefixed(raw); ok {
			return ParsedIdentifier{Format: FormatEndpointPrefixed, Raw: raw, EndpointURL: endpoint, RecordID: id}
		}
		return ParsedIdentifier{Format: FormatFullURL, Raw: raw}
	}

	if strings.Contains(raw, endpointSeparator) {
		endpoint, id, _ := strings.Cut(raw, endpointSeparator)
		endpoint, id = strings.TrimSpace(endpoint), strings.TrimSpace(id)
		if endpoint == "" || id == "" {
			return ParsedIdentifier{Format: FormatInvalid, Raw: raw}
		}
		return ParsedIdentifier{Format: FormatEndpointPrefixed, Raw: raw, EndpointURL: endpoint, RecordID: id}
	}

	if strings.Contains(raw, labelSeparator) {
		label, id, _ := strings.Cut(raw, labelSeparator)
		label, id = strings.TrimSpace(label), strings.TrimSpace(id)
		if label == "" || id == "" {
			return ParsedIdentifier{Format: FormatInvalid, Raw: raw}
		}
		return ParsedIdentifier{Format: FormatLabelPrefixed, Raw: raw, Label: label, RecordID: id}
	}

	return ParsedIdentifier{Format: FormatBare, Raw: raw, RecordID: raw}
}

// String renders the identifier for logs.
func (p ParsedIdentifier) String() string {
	switch p.Format {
	case FormatFullURL:
		return fmt.Sprintf("full_url(%s)", p.Raw)
	case FormatEndpointPrefixed:
		return fmt.Sprintf("endpoint_prefixed(%s, %s)", p.EndpointURL, p.RecordID)
	case FormatLabelPrefixed:
		return fmt.Sprintf("label_prefixed(%s, %s)", p.Label, p.RecordID)
	case FormatBare:
		return fmt.Sprintf("bare(%s)", p.RecordID)
	default:
		return "invalid"
	}
}

// EncodeEndpointPrefixed renders the "<endpoint>|<id>" stored form.
func EncodeEndpointPrefixed(endpointURL, recordID string) string {
	return endpointURL + endpointSeparator + recordID
}

// EncodeLabelPrefixed renders the "<label>;<id>" stored form.
func EncodeLabelPrefixed(label, recordID string) string {
	return label + labelSeparator + recordID
}

func isFullURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// splitEndpointPrefixed recognizes "<graphql endpoint>|<id>" inside a value
// that starts with a URL scheme.
func splitEndpointPrefixed(raw string) (endpoint, id string, ok bool) {
	endpoint, id, found := strings.Cut(raw, endpointSeparator)
	if !found {
		return "", "", false
	}
	endpoint, id = strings.TrimSpace(endpoint), strings.TrimSpace(id)
	if id == "" || strings.Contains(id, "/") {
		return "", "", false
	}
	if !strings.HasSuffix(strings.ToLower(strings.TrimRight(endpoint, "/")), APISuffix) {
		return "", "", false
	}
	return endpoint, id, true
}
