package descriptor

import (
	"encoding/json"
	"fmt"
)

// AuthType discriminates the OAuth flavour a descriptor speaks.
type AuthType string

const (
	AuthOAuth1 AuthType = "OAUTH1"
	AuthOAuth2 AuthType = "OAUTH2"
)

// ParseAuthType converts a string to an AuthType, returning false if invalid.
func ParseAuthType(s string) (AuthType, bool) {
	switch s {
	case "OAUTH1":
		return AuthOAuth1, true
	case "OAUTH2":
		return AuthOAuth2, true
	default:
		return "", false
	}
}

// IntegrationDescriptor is the canonical, fully normalized definition of an
// integration. Values returned by Normalize are shared with the registry and
// must not be modified.
type IntegrationDescriptor struct {
	ID      string          `json:"id" yaml:"id"`
	Name    string          `json:"name" yaml:"name"`
	Image   string          `json:"image" yaml:"image"`
	Auth    AuthConfig      `json:"auth" yaml:"auth"`
	Request RequestTemplate `json:"request" yaml:"request"`
}

// IsOAuth1 reports whether the descriptor uses the OAUTH1 variant.
func (d IntegrationDescriptor) IsOAuth1() bool {
	_, ok := d.Auth.(*OAuth1Config)
	return ok
}

// IsOAuth2 reports whether the descriptor uses the OAUTH2 variant.
func (d IntegrationDescriptor) IsOAuth2() bool {
	_, ok := d.Auth.(*OAuth2Config)
	return ok
}

// AuthConfig is implemented only by *OAuth1Config and *OAuth2Config.
type AuthConfig interface {
	AuthType() AuthType
	// SetupLabels returns the UI labels for the key and secret a user enters
	// when configuring the integration.
	SetupLabels() (key, secret string)

	sealed()
}

// OAuth1Config holds the OAUTH1 variant of an auth configuration.
type OAuth1Config struct {
	RequestTokenURL      string         `json:"requestTokenURL" yaml:"requestTokenURL"`
	AccessTokenURL       string         `json:"accessTokenURL" yaml:"accessTokenURL"`
	UserAuthorizationURL string         `json:"userAuthorizationURL" yaml:"userAuthorizationURL"`
	SignatureMethod      string         `json:"signatureMethod" yaml:"signatureMethod"`
	CallbackURL          string         `json:"callbackURL,omitempty" yaml:"callbackURL,omitempty"`
	AuthorizationParams  map[string]any `json:"authorizationParams,omitempty" yaml:"authorizationParams,omitempty"`
	TokenParams          map[string]any `json:"tokenParams,omitempty" yaml:"tokenParams,omitempty"`
	Config               map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
	SetupKeyLabel        string         `json:"setupKeyLabel" yaml:"setupKeyLabel"`
	SetupSecretLabel     string         `json:"setupSecretLabel" yaml:"setupSecretLabel"`
	Hint                 string         `json:"hint,omitempty" yaml:"hint,omitempty"`
	Provider             string         `json:"provider,omitempty" yaml:"provider,omitempty"`
}

func (*OAuth1Config) AuthType() AuthType { return AuthOAuth1 }

func (c *OAuth1Config) SetupLabels() (string, string) { return c.SetupKeyLabel, c.SetupSecretLabel }

func (*OAuth1Config) sealed() {}

// MarshalJSON re-emits the authType discriminator.
func (c *OAuth1Config) MarshalJSON() ([]byte, error) {
	type alias OAuth1Config
	return json.Marshal(struct {
		AuthType AuthType `json:"authType"`
		alias
	}{AuthOAuth1, alias(*c)})
}

// MarshalYAML re-emits the authType discriminator.
func (c *OAuth1Config) MarshalYAML() (any, error) {
	type alias OAuth1Config
	return struct {
		AuthType AuthType `yaml:"authType"`
		alias    `yaml:",inline"`
	}{AuthOAuth1, alias(*c)}, nil
}

// OAuth2Config holds the OAUTH2 variant of an auth configuration.
type OAuth2Config struct {
	AuthorizationURL    string         `json:"authorizationURL" yaml:"authorizationURL"`
	TokenURL            string         `json:"tokenURL" yaml:"tokenURL"`
	AuthorizationMethod string         `json:"authorizationMethod,omitempty" yaml:"authorizationMethod,omitempty"`
	AuthorizationParams map[string]any `json:"authorizationParams,omitempty" yaml:"authorizationParams,omitempty"`
	BodyFormat          string         `json:"bodyFormat,omitempty" yaml:"bodyFormat,omitempty"`
	TokenParams         map[string]any `json:"tokenParams,omitempty" yaml:"tokenParams,omitempty"`
	Config              map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
	SetupKeyLabel       string         `json:"setupKeyLabel" yaml:"setupKeyLabel"`
	SetupSecretLabel    string         `json:"setupSecretLabel" yaml:"setupSecretLabel"`
	Hint                string         `json:"hint,omitempty" yaml:"hint,omitempty"`
	Provider            string         `json:"provider,omitempty" yaml:"provider,omitempty"`
}

func (*OAuth2Config) AuthType() AuthType { return AuthOAuth2 }

func (c *OAuth2Config) SetupLabels() (string, string) { return c.SetupKeyLabel, c.SetupSecretLabel }

func (*OAuth2Config) sealed() {}

// MarshalJSON re-emits the authType discriminator.
func (c *OAuth2Config) MarshalJSON() ([]byte, error) {
	type alias OAuth2Config
	return json.Marshal(struct {
		AuthType AuthType `json:"authType"`
		alias
	}{AuthOAuth2, alias(*c)})
}

// MarshalYAML re-emits the authType discriminator.
func (c *OAuth2Config) MarshalYAML() (any, error) {
	type alias OAuth2Config
	return struct {
		AuthType AuthType `yaml:"authType"`
		alias    `yaml:",inline"`
	}{AuthOAuth2, alias(*c)}, nil
}

// RequestTemplate describes how the OAuth executor should call the provider's
// API. Header values may contain placeholders such as ${auth.accessToken};
// they are passed through untouched.
type RequestTemplate struct {
	BaseURL string            `json:"baseURL" yaml:"baseURL"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// RawDescriptor is a descriptor as authored, before normalization. Every field
// may be missing.
type RawDescriptor struct {
	ID      string          `json:"id,omitempty" yaml:"id,omitempty"`
	Name    string          `json:"name,omitempty" yaml:"name,omitempty"`
	Image   string          `json:"image,omitempty" yaml:"image,omitempty"`
	Auth    *RawAuth        `json:"auth,omitempty" yaml:"auth,omitempty"`
	Request RequestTemplate `json:"request" yaml:"request"`
}

// RawAuth is the flattened, as-authored auth block. AuthType decides which of
// the variant fields are meaningful.
type RawAuth struct {
	AuthType AuthType `json:"authType" yaml:"authType"`

	// OAUTH1
	RequestTokenURL      string `json:"requestTokenURL,omitempty" yaml:"requestTokenURL,omitempty"`
	AccessTokenURL       string `json:"accessTokenURL,omitempty" yaml:"accessTokenURL,omitempty"`
	UserAuthorizationURL string `json:"userAuthorizationURL,omitempty" yaml:"userAuthorizationURL,omitempty"`
	SignatureMethod      string `json:"signatureMethod,omitempty" yaml:"signatureMethod,omitempty"`
	CallbackURL          string `json:"callbackURL,omitempty" yaml:"callbackURL,omitempty"`

	// OAUTH2
	AuthorizationURL    string `json:"authorizationURL,omitempty" yaml:"authorizationURL,omitempty"`
	TokenURL            string `json:"tokenURL,omitempty" yaml:"tokenURL,omitempty"`
	AuthorizationMethod string `json:"authorizationMethod,omitempty" yaml:"authorizationMethod,omitempty"`
	BodyFormat          string `json:"bodyFormat,omitempty" yaml:"bodyFormat,omitempty"`

	AuthorizationParams map[string]any `json:"authorizationParams,omitempty" yaml:"authorizationParams,omitempty"`
	TokenParams         map[string]any `json:"tokenParams,omitempty" yaml:"tokenParams,omitempty"`
	Config              map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
	SetupKeyLabel       string         `json:"setupKeyLabel,omitempty" yaml:"setupKeyLabel,omitempty"`
	SetupSecretLabel    string         `json:"setupSecretLabel,omitempty" yaml:"setupSecretLabel,omitempty"`
	Hint                string         `json:"hint,omitempty" yaml:"hint,omitempty"`
	Provider            string         `json:"provider,omitempty" yaml:"provider,omitempty"`
}

// String renders the descriptor as "id (name, authType)" for log lines.
func (d IntegrationDescriptor) String() string {
	var at AuthType
	if d.Auth != nil {
		at = d.Auth.AuthType()
	}
	return fmt.Sprintf("%s (%s, %s)", d.ID, d.Name, at)
}
