package go_maplegw

import "strings"

// ObfuscateToken hides most of a session token so that it can be logged.
func ObfuscateToken(token string) string {
	if len(token) < 5 {
		return strings.Repeat("*", len(token))
	}

	return token[:2] + strings.Repeat("*", len(token)-4) + token[len(token)-2:]
}
