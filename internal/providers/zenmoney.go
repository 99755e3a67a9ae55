package providers

import (
	"github.com/pizzly-labs/pizzly/internal/descriptor"
	"github.com/pizzly-labs/pizzly/internal/registry"
)

const zenmoneyImage = "https://zenmoney.ru/favicon.ico"

// Zenmoney exports the current OAuth2 API and the legacy OAuth1 API.
func Zenmoney() []registry.Variant {
	return []registry.Variant{
		{Name: "oauth2", Descriptor: descriptor.RawDescriptor{
			ID:    "zenmoney",
			Name:  "Zenmoney",
			Image: zenmoneyImage,
			Auth: &descriptor.RawAuth{
				AuthType:            descriptor.AuthOAuth2,
				AuthorizationMethod: descriptor.AuthorizationMethodBody,
				AuthorizationParams: map[string]any{"response_type": "code"},
				AuthorizationURL:    "https://api.zenmoney.ru/oauth2/authorize/",
				BodyFormat:          "json",
				Config:              map[string]any{"response_type": "code", "scope": []any{}},
				TokenParams:         map[string]any{"grant_type": "authorization_code"},
				TokenURL:            "https://api.zenmoney.ru/oauth2/token/",
			},
			Request: descriptor.RequestTemplate{
				BaseURL: "https://api.zenmoney.ru/",
				Headers: jsonHeaders("Bearer ${auth.accessToken}"),
			},
		}},
		{Name: "oauth1", Descriptor: descriptor.RawDescriptor{
			ID:    "zenmoney-legacy",
			Name:  "Zenmoney (legacy API)",
			Image: zenmoneyImage,
			Auth: &descriptor.RawAuth{
				AuthType:             descriptor.AuthOAuth1,
				AuthorizationParams:  map[string]any{},
				RequestTokenURL:      "http://api.zenmoney.ru/oauth/request_token",
				AccessTokenURL:       "http://api.zenmoney.ru/oauth/access_token",
				UserAuthorizationURL: "http://api.zenmoney.ru/access/",
				SignatureMethod:      "HMAC-SHA1",
				Config:               map[string]any{},
				TokenParams:          map[string]any{},
				CallbackURL:          "http://api.zenmoney.ru/callback-url-wtf/",
			},
			Request: descriptor.RequestTemplate{
				BaseURL: "https://zenmoney.ru/api/",
				Headers: jsonHeaders("OAuth ${auth.oauth1}"),
			},
		}},
	}
}

func jsonHeaders(authorization string) map[string]string {
	return map[string]string{
		"Accept":        "application/json",
		"Content-Type":  "application/json",
		"User-Agent":    "Pizzly",
		"Authorization": authorization,
	}
}
