package restclient

import (
	"net/url"
	"strings"
)

// joinURL composes the absolute request URL from the base URL, the endpoint
// suffix, and the ordered query parameters. Keys and values are
// percent-encoded; the separator flips from "?" to "&" when the accumulated
// URL already carries a query string. Malformed base URLs are not validated
// here; they fail when the transport opens the URL.
func joinURL(base, endpoint string, queries []Query) string {
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("/")
	sb.WriteString(endpoint)

	for _, q := range queries {
		if strings.Contains(sb.String(), "?") {
			sb.WriteString("&")
		} else {
			sb.WriteString("?")
		}
		sb.WriteString(url.QueryEscape(q.Key))
		sb.WriteString("=")
		sb.WriteString(url.QueryEscape(q.Value))
	}
	return sb.String()
}
