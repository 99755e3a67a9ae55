package descriptor

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

var (
	// ErrMissingName is returned when no image is given and the logo URL
	// cannot be derived because the name is empty too.
	ErrMissingName = errors.New("descriptor has neither image nor name")
	// ErrMissingAuth is returned when the raw descriptor has no auth block.
	ErrMissingAuth = errors.New("descriptor has no auth block")
	// ErrUnknownAuthType is returned for an authType other than OAUTH1/OAUTH2.
	ErrUnknownAuthType = errors.New("unknown authType")
)

const logoURLFormat = "https://logo.clearbit.com/%s.com"

// Default setup labels per auth type.
const (
	OAuth1KeyLabel    = "Consumer Key"
	OAuth1SecretLabel = "Consumer Secret"
	OAuth2KeyLabel    = "Client ID"
	OAuth2SecretLabel = "Client Secret"
)

// Normalize turns a raw descriptor into a canonical one. sourceID is the
// logical name of the file the descriptor came from (extension stripped) and
// becomes the id when raw has none. raw is not modified.
func Normalize(sourceID string, raw RawDescriptor) (IntegrationDescriptor, error) {
	d := IntegrationDescriptor{
		ID:    raw.ID,
		Name:  raw.Name,
		Image: raw.Image,
		Request: RequestTemplate{
			BaseURL: raw.Request.BaseURL,
			Headers: maps.Clone(raw.Request.Headers),
		},
	}

	if d.ID == "" {
		d.ID = sourceID
	}

	if d.Image == "" {
		if raw.Name == "" {
			return IntegrationDescriptor{}, fmt.Errorf("normalizing %q: %w", d.ID, ErrMissingName)
		}
		d.Image = LogoURL(raw.Name)
	}

	auth, err := normalizeAuth(raw.Auth)
	if err != nil {
		return IntegrationDescriptor{}, fmt.Errorf("normalizing %q: %w", d.ID, err)
	}
	d.Auth = auth

	return d, nil
}

// LogoURL derives a clearbit logo URL from an integration name. The name is
// lower-cased and only its first space is removed, so "Google Sheets Pro"
// becomes "googlesheets pro". Existing descriptors depend on this exact form.
func LogoURL(name string) string {
	slug := strings.Replace(strings.ToLower(name), " ", "", 1)
	return fmt.Sprintf(logoURLFormat, slug)
}

// normalizeAuth builds the auth variant selected by raw.AuthType. Setup labels
// authored in raw take precedence over the per-type defaults.
func normalizeAuth(raw *RawAuth) (AuthConfig, error) {
	if raw == nil {
		return nil, ErrMissingAuth
	}

	switch raw.AuthType {
	case AuthOAuth1:
		return &OAuth1Config{
			RequestTokenURL:      raw.RequestTokenURL,
			AccessTokenURL:       raw.AccessTokenURL,
			UserAuthorizationURL: raw.UserAuthorizationURL,
			SignatureMethod:      raw.SignatureMethod,
			CallbackURL:          raw.CallbackURL,
			AuthorizationParams:  maps.Clone(raw.AuthorizationParams),
			TokenParams:          maps.Clone(raw.TokenParams),
			Config:               maps.Clone(raw.Config),
			SetupKeyLabel:        firstNonEmpty(raw.SetupKeyLabel, OAuth1KeyLabel),
			SetupSecretLabel:     firstNonEmpty(raw.SetupSecretLabel, OAuth1SecretLabel),
			Hint:                 raw.Hint,
			Provider:             raw.Provider,
		}, nil
	case AuthOAuth2:
		return &OAuth2Config{
			AuthorizationURL:    raw.AuthorizationURL,
			TokenURL:            raw.TokenURL,
			AuthorizationMethod: raw.AuthorizationMethod,
			AuthorizationParams: maps.Clone(raw.AuthorizationParams),
			BodyFormat:          raw.BodyFormat,
			TokenParams:         maps.Clone(raw.TokenParams),
			Config:              maps.Clone(raw.Config),
			SetupKeyLabel:       firstNonEmpty(raw.SetupKeyLabel, OAuth2KeyLabel),
			SetupSecretLabel:    firstNonEmpty(raw.SetupSecretLabel, OAuth2SecretLabel),
			Hint:                raw.Hint,
			Provider:            raw.Provider,
		}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownAuthType, raw.AuthType)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
