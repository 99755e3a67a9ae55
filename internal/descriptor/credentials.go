package descriptor

// Credentials is the setup key/secret pair a user supplies for an
// integration. It is implemented only by OAuth1Credentials and
// OAuth2Credentials.
type Credentials interface {
	AuthType() AuthType

	sealed()
}

// OAuth1Credentials holds an OAUTH1 consumer key pair.
type OAuth1Credentials struct {
	ConsumerKey    string `json:"consumerKey"`
	ConsumerSecret string `json:"consumerSecret"`
}

func (OAuth1Credentials) AuthType() AuthType { return AuthOAuth1 }

func (OAuth1Credentials) sealed() {}

// OAuth2Credentials holds an OAUTH2 client id and secret.
type OAuth2Credentials struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

func (OAuth2Credentials) AuthType() AuthType { return AuthOAuth2 }

func (OAuth2Credentials) sealed() {}
