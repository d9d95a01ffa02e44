package routepath

import (
	"net/url"
	"strings"
)

// ParseQuery parses a raw query string (without leading "?") into a map.
//
// Repeated keys keep the last occurrence: "a=1&a=2" yields {"a": "2"}.
// This is a documented simplification; values are never combined into
// slices. Keys and values are percent-decoded ("+" decodes to space). A
// pair whose value fails to decode keeps the raw value rather than being
// dropped, so a malformed query never hides its own keys.
func ParseQuery(raw string) map[string]string {
	if raw == "" {
		return map[string]string{}
	}

	out := make(map[string]string)
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if key == "" {
			continue
		}
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		if decoded, err := url.QueryUnescape(value); err == nil {
			value = decoded
		}
		out[key] = value
	}
	return out
}

// EncodeQuery renders a query map back into canonical "k=v&k2=v2" form with
// keys sorted for deterministic output.
func EncodeQuery(query map[string]string) string {
	if len(query) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range query {
		values.Set(k, v)
	}
	return values.Encode()
}
