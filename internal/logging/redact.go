// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"net/url"
	"regexp"
)

const redacted = "[REDACTED]"

// secretParams are query parameters never written to logs or cache keys.
var secretParams = []string{"api_key", "access_token", "token"}

var secretParamPattern = regexp.MustCompile(`\b(api_key|access_token|token)=[^&\s"]*`)

// SanitizeToken masks a secret, keeping only the last four characters.
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return redacted
	}
	return "..." + token[len(token)-4:]
}

// SanitizeURL returns rawURL with secret query parameters removed. Unparsable
// input is fully redacted.
func SanitizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return redacted
	}
	q := u.Query()
	changed := false
	for _, p := range secretParams {
		if q.Has(p) {
			q.Del(p)
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// SanitizeError removes secret query parameters from an error message that embeds
// a request URL, as net/http errors do.
func SanitizeError(msg string) string {
	return secretParamPattern.ReplaceAllString(msg, "${1}="+redacted)
}
