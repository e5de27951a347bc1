package logging

import (
	"regexp"

	"go.uber.org/zap"
)

const (
	// RedactedText is the replacement text for sensitive data
	RedactedText = "[REDACTED]"
)

var (
	// Pattern to match potential API keys in URLs or error strings
	apiKeyPattern = regexp.MustCompile(`(?i)(api[_-]?key|x-api-key|key)=[A-Za-z0-9-_]{16,}`)

	// Pattern to match sk-ant style provider keys
	providerKeyPattern = regexp.MustCompile(`sk-[A-Za-z0-9-_]{16,}`)

	// Pattern to match connection string credentials (user:pass@host format)
	connStringPattern = regexp.MustCompile(`://[^:/\s]+:[^@\s]+@[^/\s]+`)
)

// New builds the process-wide root logger. Production config everywhere
// except local, where the development encoder is friendlier.
func New(env string) (*zap.Logger, error) {
	if env == "local" || env == "test" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// SanitizeConnectionString removes credentials from a database URL before
// it reaches a log line.
func SanitizeConnectionString(connStr string) string {
	if connStr == "" {
		return ""
	}
	return connStringPattern.ReplaceAllString(connStr, "://"+RedactedText+"@"+RedactedText)
}

// SanitizeError scrubs API keys and connection credentials from an error
// before logging. External-API errors can echo the request URL back.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	s := apiKeyPattern.ReplaceAllString(err.Error(), "${1}="+RedactedText)
	s = providerKeyPattern.ReplaceAllString(s, RedactedText)
	return connStringPattern.ReplaceAllString(s, "://"+RedactedText+"@"+RedactedText)
}
