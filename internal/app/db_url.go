package app

import (
	"net/url"
	"strings"
)

// isURLDSN distinguishes postgres://... from the key=value form lib/pq also
// accepts.
func isURLDSN(raw string) (*url.URL, bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return nil, false
	}
	return parsed, true
}

// dsnKeywords parses a key=value DSN. Quoted values with spaces are not
// supported; none of our deployments use them.
func dsnKeywords(raw string) map[string]string {
	out := make(map[string]string)
	for _, token := range strings.Fields(raw) {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			continue
		}
		out[key] = strings.Trim(value, `"'`)
	}
	return out
}

// normalizeDBURL tags the DSN with application_name so sessions are
// attributable in pg_stat_activity. An explicit value wins.
func normalizeDBURL(raw, applicationName string) string {
	applicationName = strings.TrimSpace(applicationName)
	if applicationName == "" || strings.TrimSpace(raw) == "" {
		return raw
	}

	if parsed, ok := isURLDSN(raw); ok {
		query := parsed.Query()
		if query.Get("application_name") != "" {
			return raw
		}
		query.Set("application_name", applicationName)
		parsed.RawQuery = query.Encode()
		return parsed.String()
	}

	if _, ok := dsnKeywords(raw)["application_name"]; ok {
		return raw
	}
	return strings.TrimSpace(raw) + " application_name=" + applicationName
}

func dbNameFromURL(raw string) string {
	if parsed, ok := isURLDSN(raw); ok {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}
	return strings.TrimSpace(dsnKeywords(raw)["dbname"])
}

// redactDBURL drops the password so the DSN can be logged.
func redactDBURL(raw string) string {
	if parsed, ok := isURLDSN(raw); ok {
		return parsed.Redacted()
	}

	fields := strings.Fields(raw)
	for i, token := range fields {
		if strings.HasPrefix(token, "password=") {
			fields[i] = "password=xxxxx"
		}
	}
	return strings.Join(fields, " ")
}
