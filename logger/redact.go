package logger

import "strings"

// DefaultMaskValue replaces sensitive values in log output.
const DefaultMaskValue = "***"

// defaultSensitiveKeys covers the credential-bearing fields an HTTP client is
// likely to log: auth headers, tokens, and API keys.
var defaultSensitiveKeys = []string{
	"authorization",
	"proxy-authorization",
	"password",
	"secret",
	"token",
	"api_key",
	"apikey",
	"x-api-key",
	"credential",
}

// Redactor masks values whose keys look like they carry credentials.
type Redactor struct {
	keys []string
	mask string
}

// NewRedactor creates a redactor for the given sensitive key substrings.
// A nil or empty list uses the defaults.
func NewRedactor(keys []string) *Redactor {
	if len(keys) == 0 {
		keys = defaultSensitiveKeys
	}
	return &Redactor{keys: keys, mask: DefaultMaskValue}
}

// Value returns the mask when key is sensitive, otherwise the value unchanged.
func (r *Redactor) Value(key, value string) string {
	if r.sensitive(key) {
		return r.mask
	}
	return value
}

// Any masks string values under sensitive keys, including one level inside
// maps of strings and string-slice maps (the shape of HTTP headers).
func (r *Redactor) Any(key string, value any) any {
	switch v := value.(type) {
	case string:
		return r.Value(key, v)
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, val := range v {
			out[k] = r.Value(k, val)
		}
		return out
	case map[string][]string:
		out := make(map[string][]string, len(v))
		for k, vals := range v {
			if r.sensitive(k) {
				out[k] = []string{r.mask}
				continue
			}
			out[k] = vals
		}
		return out
	default:
		if r.sensitive(key) {
			return r.mask
		}
		return value
	}
}

// Fields masks sensitive entries in a field map.
func (r *Redactor) Fields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = r.Any(k, v)
	}
	return out
}

func (r *Redactor) sensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, k := range r.keys {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
