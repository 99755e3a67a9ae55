package registry

import (
	"regexp"
	"strings"

	"github.com/pizzly-labs/pizzly/internal/descriptor"
)

// Setup keys read by ValidateConfigurationCredentials.
const (
	SetupConsumerKey    = "consumerKey"
	SetupConsumerSecret = "consumerSecret"
	SetupClientID       = "clientId"
	SetupClientSecret   = "clientSecret"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// ValidateConfigurationScopes parses a newline-separated scope list. It
// returns nil when the input is blank. Only the input as a whole is trimmed,
// so blank lines between scopes are kept as empty entries.
func ValidateConfigurationScopes(raw string) []string {
	scopes := strings.TrimSpace(raw)
	if scopes == "" {
		return nil
	}
	return lineBreak.Split(scopes, -1)
}

// ValidateConfigurationCredentials extracts the credentials required by the
// descriptor's auth type from setup. It returns nil when setup is nil or
// either required value is missing or empty; callers must branch on that.
func ValidateConfigurationCredentials(setup map[string]string, d descriptor.IntegrationDescriptor) descriptor.Credentials {
	if setup == nil {
		return nil
	}

	switch d.Auth.(type) {
	case *descriptor.OAuth1Config:
		key, secret := setup[SetupConsumerKey], setup[SetupConsumerSecret]
		if key != "" && secret != "" {
			return descriptor.OAuth1Credentials{ConsumerKey: key, ConsumerSecret: secret}
		}
	case *descriptor.OAuth2Config:
		id, secret := setup[SetupClientID], setup[SetupClientSecret]
		if id != "" && secret != "" {
			return descriptor.OAuth2Credentials{ClientID: id, ClientSecret: secret}
		}
	}
	return nil
}
