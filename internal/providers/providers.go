package providers

import "github.com/pizzly-labs/pizzly/internal/registry"

// Builders returns every code-kind provider keyed by the logical file name
// that selects it (e.g. "zenmoney" for integrations/zenmoney.js).
func Builders() map[string]registry.Builder {
	return map[string]registry.Builder{
		"zenmoney": Zenmoney,
	}
}
