package cli

import (
	"fmt"
	"strings"

	"github.com/pizzly-labs/pizzly/internal/descriptor"
	"github.com/pizzly-labs/pizzly/internal/registry"
	"github.com/spf13/cobra"
)

var (
	checkSetup       map[string]string
	checkScopes      []string
	checkRedirectURL string
)

var checkCmd = &cobra.Command{
	Use:   "check <id>",
	Short: "Check setup credentials and scopes for an integration",
	Long: `Check that the setup values required by an integration are present.

OAUTH1 integrations need consumerKey and consumerSecret, OAUTH2 integrations
need clientId and clientSecret:

  pizzly check github --set clientId=abc --set clientSecret=xyz --scope repo --scope user:email

For OAUTH2 integrations the resolved OAuth2 endpoint is printed as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringToStringVar(&checkSetup, "set", nil, "Setup value as key=value (repeatable)")
	checkCmd.Flags().StringArrayVar(&checkScopes, "scope", nil, "Scope to request (repeatable)")
	checkCmd.Flags().StringVar(&checkRedirectURL, "redirect-url", "", "Callback URL used to build the authorization URL")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	d, err := reg.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	scopes := registry.ValidateConfigurationScopes(strings.Join(checkScopes, "\n"))
	if scopes == nil {
		fmt.Fprintln(out, "Scopes: none")
	} else {
		fmt.Fprintf(out, "Scopes: %s\n", strings.Join(scopes, ", "))
	}

	creds := registry.ValidateConfigurationCredentials(checkSetup, d)
	if creds == nil {
		keyLabel, secretLabel := d.Auth.SetupLabels()
		return fmt.Errorf("integration %q needs both %s and %s", d.ID, keyLabel, secretLabel)
	}

	switch c := creds.(type) {
	case descriptor.OAuth1Credentials:
		fmt.Fprintf(out, "Credentials: OK (%s)\n", c.AuthType())
	case descriptor.OAuth2Credentials:
		fmt.Fprintf(out, "Credentials: OK (%s)\n", c.AuthType())
		cfg, err := d.OAuth2ClientConfig(c, checkRedirectURL, scopes)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Token URL: %s\n", cfg.Endpoint.TokenURL)
		fmt.Fprintf(out, "Authorization URL: %s\n", cfg.AuthCodeURL("state"))
	}
	return nil
}
