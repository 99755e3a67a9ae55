package descriptor

import (
	"fmt"

	"golang.org/x/oauth2"
)

// Values of OAuth2Config.AuthorizationMethod.
const (
	AuthorizationMethodBody   = "body"
	AuthorizationMethodHeader = "header"
)

// Endpoint maps the descriptor URLs onto an oauth2.Endpoint. The
// authorization method selects how client credentials are sent to the token
// URL; when it is unset the oauth2 package auto-detects.
func (c *OAuth2Config) Endpoint() oauth2.Endpoint {
	style := oauth2.AuthStyleAutoDetect
	switch c.AuthorizationMethod {
	case AuthorizationMethodBody:
		style = oauth2.AuthStyleInParams
	case AuthorizationMethodHeader:
		style = oauth2.AuthStyleInHeader
	}
	return oauth2.Endpoint{
		AuthURL:   c.AuthorizationURL,
		TokenURL:  c.TokenURL,
		AuthStyle: style,
	}
}

// OAuth2ClientConfig builds the oauth2.Config an executor needs to run the
// authorization code flow for d. It fails for OAUTH1 descriptors.
func (d IntegrationDescriptor) OAuth2ClientConfig(creds OAuth2Credentials, redirectURL string, scopes []string) (*oauth2.Config, error) {
	auth, ok := d.Auth.(*OAuth2Config)
	if !ok {
		return nil, fmt.Errorf("integration %q does not use %s", d.ID, AuthOAuth2)
	}
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     auth.Endpoint(),
		RedirectURL:  redirectURL,
		Scopes:       scopes,
	}, nil
}
