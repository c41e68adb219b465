package auth0

import "strings"

// normalizeDomain reduces a tenant domain to bare host form, e.g.
// dev-xxxxx.us.auth0.com: no scheme, no trailing slash.
func normalizeDomain(domain string) string {
	d := strings.TrimSpace(domain)
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	return strings.TrimRight(d, "/")
}

// managementAudience returns the audience WITH a trailing slash. Tokens
// issued for an audience without the trailing slash are rejected by some
// tenants. Falls back to https://<domain>/api/v2/ when no audience is
// configured.
func managementAudience(audience, domain string) string {
	aud := strings.TrimSpace(audience)
	if aud != "" {
		if !strings.HasSuffix(aud, "/") {
			aud += "/"
		}
		return aud
	}
	d := normalizeDomain(domain)
	if d == "" {
		return ""
	}
	return "https://" + d + "/api/v2/"
}

// managementBase returns the REST base URL WITHOUT a trailing slash.
func managementBase(audience, domain string) string {
	aud := strings.TrimSpace(audience)
	if aud != "" {
		return strings.TrimRight(aud, "/")
	}
	d := normalizeDomain(domain)
	if d == "" {
		return ""
	}
	return "https://" + d + "/api/v2"
}
