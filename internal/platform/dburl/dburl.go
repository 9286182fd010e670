// Package dburl normalizes postgres connection strings in both URL and
// key/value form.
package dburl

import (
	"net/url"
	"strings"
)

const preparedBinaryKey = "disable_prepared_binary_result"

func isURL(raw string) (*url.URL, bool) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return nil, false
	}
	return parsed, true
}

// Normalize turns off binary results for prepared statements unless the
// connection string already sets the option. Poolers in transaction mode
// cannot keep prepared statement state between connections.
func Normalize(raw string, disablePreparedBinaryResult bool) string {
	raw = strings.TrimSpace(raw)
	if !disablePreparedBinaryResult || raw == "" {
		return raw
	}

	if parsed, ok := isURL(raw); ok {
		query := parsed.Query()
		if query.Get(preparedBinaryKey) == "" {
			query.Set(preparedBinaryKey, "yes")
			parsed.RawQuery = query.Encode()
		}
		return parsed.String()
	}

	if _, ok := keyValue(raw, preparedBinaryKey); ok {
		return raw
	}
	return raw + " " + preparedBinaryKey + "=yes"
}

// DatabaseName returns the dbname, or "" when none is set.
func DatabaseName(raw string) string {
	raw = strings.TrimSpace(raw)
	if parsed, ok := isURL(raw); ok {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}
	name, _ := keyValue(raw, "dbname")
	return name
}

// Redact hides the password so the string can be logged.
func Redact(raw string) string {
	raw = strings.TrimSpace(raw)
	if parsed, ok := isURL(raw); ok {
		return parsed.Redacted()
	}

	fields := strings.Fields(raw)
	for i, field := range fields {
		if strings.HasPrefix(field, "password=") {
			fields[i] = "password=xxxxx"
		}
	}
	return strings.Join(fields, " ")
}

func keyValue(raw, key string) (string, bool) {
	for _, token := range strings.Fields(raw) {
		k, v, found := strings.Cut(token, "=")
		if !found || k != key {
			continue
		}
		return strings.Trim(v, `"'`), true
	}
	return "", false
}
