package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/pizzly-labs/pizzly/internal/descriptor"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var (
	getJSON bool
	getYAML bool
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one integration",
	Long:  `Show the normalized descriptor of an integration, including derived defaults.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().BoolVar(&getJSON, "json", false, "Output the descriptor as JSON")
	getCmd.Flags().BoolVar(&getYAML, "yaml", false, "Output the descriptor as YAML")
	getCmd.MarkFlagsMutuallyExclusive("json", "yaml")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	d, err := reg.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case getJSON:
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling descriptor: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case getYAML:
		data, err := yaml.Marshal(d)
		if err != nil {
			return fmt.Errorf("marshaling descriptor: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	return printDescriptor(cmd, d)
}

func printDescriptor(cmd *cobra.Command, d descriptor.IntegrationDescriptor) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	keyLabel, secretLabel := d.Auth.SetupLabels()

	fmt.Fprintf(w, "ID:\t%s\n", d.ID)
	fmt.Fprintf(w, "Name:\t%s\n", d.Name)
	fmt.Fprintf(w, "Image:\t%s\n", d.Image)
	fmt.Fprintf(w, "Auth:\t%s\n", d.Auth.AuthType())

	switch auth := d.Auth.(type) {
	case *descriptor.OAuth1Config:
		fmt.Fprintf(w, "Request token URL:\t%s\n", auth.RequestTokenURL)
		fmt.Fprintf(w, "Authorization URL:\t%s\n", auth.UserAuthorizationURL)
		fmt.Fprintf(w, "Access token URL:\t%s\n", auth.AccessTokenURL)
		fmt.Fprintf(w, "Signature method:\t%s\n", auth.SignatureMethod)
	case *descriptor.OAuth2Config:
		fmt.Fprintf(w, "Authorization URL:\t%s\n", auth.AuthorizationURL)
		fmt.Fprintf(w, "Token URL:\t%s\n", auth.TokenURL)
		if auth.AuthorizationMethod != "" {
			fmt.Fprintf(w, "Authorization method:\t%s\n", auth.AuthorizationMethod)
		}
	}

	fmt.Fprintf(w, "Setup labels:\t%s / %s\n", keyLabel, secretLabel)
	fmt.Fprintf(w, "Base URL:\t%s\n", d.Request.BaseURL)

	names := make([]string, 0, len(d.Request.Headers))
	for name := range d.Request.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "Header %s:\t%s\n", name, d.Request.Headers[name])
	}
	return w.Flush()
}
