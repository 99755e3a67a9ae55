package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/pizzly-labs/pizzly/internal/descriptor"
	"github.com/spf13/cobra"
)

var (
	listAuthFilter string
	listJSON       bool
)

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List available integrations",
	Long: `List the integrations found in the integrations directory.

The query matches against ids and names (case-insensitive substring).
Use --auth-type to keep only OAUTH1 or OAUTH2 integrations.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listAuthFilter, "auth-type", "", "Filter by auth type (OAUTH1, OAUTH2)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents an integration for display.
type listEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	AuthType string `json:"authType"`
	BaseURL  string `json:"baseURL"`
}

func runList(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	var authFilter descriptor.AuthType
	if listAuthFilter != "" {
		at, ok := descriptor.ParseAuthType(strings.ToUpper(listAuthFilter))
		if !ok {
			return fmt.Errorf("unknown auth type %q (expected OAUTH1 or OAUTH2)", listAuthFilter)
		}
		authFilter = at
	}

	integrations, err := reg.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing integrations: %w", err)
	}

	var entries []listEntry
	for _, d := range integrations {
		if !matchesList(d, query, authFilter) {
			continue
		}
		entries = append(entries, listEntry{
			ID:       d.ID,
			Name:     d.Name,
			AuthType: string(d.Auth.AuthType()),
			BaseURL:  d.Request.BaseURL,
		})
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No integrations found.")
		return nil
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}
	return printListTable(cmd, entries)
}

// matchesList reports whether d passes the query and auth type filters.
func matchesList(d descriptor.IntegrationDescriptor, query string, authFilter descriptor.AuthType) bool {
	if authFilter != "" && d.Auth.AuthType() != authFilter {
		return false
	}
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(d.ID), q) || strings.Contains(strings.ToLower(d.Name), q)
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAUTH\tBASE URL")
	for _, e := range entries {
		baseURL := e.BaseURL
		if baseURL == "" {
			baseURL = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Name, e.AuthType, baseURL)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
