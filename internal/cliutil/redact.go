package cliutil

import (
	"regexp"
	"strings"
)

const redactedPlaceholder = "[redacted]"

var (
	templateVarPattern = regexp.MustCompile(`\$\{[^}]+\}`)
	secretKeyPattern   = regexp.MustCompile(`(?i)\b(` + strings.Join(quotedSecretKeys, "|") + `)\b(\s*[:=]\s*)(["']?)([^"'\s]+)(["']?)`)
)

var quotedSecretKeys = quoteAll(
	"API_KEY",
	"TOKEN",
	"PASSWORD",
)

func quoteAll(keys ...string) []string {
	out := make([]string, len(keys))
	for i, key := range keys {
		out[i] = regexp.QuoteMeta(key)
	}
	return out
}

// RedactSecrets masks ${VAR} references and credential assignments in event
// text. Only spawn and kill errors carry free-form text; they embed the backend
// path, which may come from an unexpanded or credential-bearing config value.
func RedactSecrets(message string) string {
	if message == "" {
		return message
	}
	redacted := templateVarPattern.ReplaceAllLiteralString(message, "${"+redactedPlaceholder+"}")
	return secretKeyPattern.ReplaceAllString(redacted, "$1$2$3"+redactedPlaceholder+"$5")
}
