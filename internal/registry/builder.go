package registry

import "github.com/pizzly-labs/pizzly/internal/descriptor"

// Variant is one named descriptor exported by a code-kind source, e.g. the
// "oauth2" and "oauth1" flavours of the same provider.
type Variant struct {
	Name       string
	Descriptor descriptor.RawDescriptor
}

// Builder produces the descriptors of a code-kind source file. Code-kind
// files are never executed: the registry looks up the Builder registered
// under the file's logical name instead.
type Builder func() []Variant
