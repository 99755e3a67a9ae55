package registry

import (
	"path/filepath"
	"strings"

	"github.com/pizzly-labs/pizzly/internal/descriptor"
	"go.uber.org/zap"
)

// aggregatorFile is the reserved index module that re-exports the other
// sources; it is never loaded as a descriptor.
const aggregatorFile = "index.js"

type entryKind int

const (
	kindUnsupported entryKind = iota
	kindJSON
	kindYAML
	kindCode
)

// splitEntryName splits a directory entry into its logical name and its
// extension (the text after the last dot). A name without a dot has no
// logical name; its whole text is treated as the extension.
func splitEntryName(file string) (logical, ext string) {
	i := strings.LastIndex(file, ".")
	if i < 0 {
		return "", file
	}
	return file[:i], file[i+1:]
}

func kindOf(ext string) entryKind {
	switch strings.ToLower(ext) {
	case "json":
		return kindJSON
	case "yaml", "yml":
		return kindYAML
	case "js":
		return kindCode
	default:
		return kindUnsupported
	}
}

// loadEntry turns one directory entry into zero or more normalized
// descriptors. Failures are logged and only ever drop this entry or one of
// its descriptors.
func (r *Registry) loadEntry(file string) []descriptor.IntegrationDescriptor {
	logger := r.logger.With(zap.String("file", file))

	if file == aggregatorFile {
		return nil
	}

	logical, ext := splitEntryName(file)
	kind := kindOf(ext)
	if kind == kindUnsupported {
		logger.Warn("skipping integration file: unsupported extension", zap.String("extension", ext))
		return nil
	}

	raws, ok := r.rawDescriptors(logger, file, logical, kind)
	if !ok {
		return nil
	}
	logger.Debug("loaded integration file", zap.Int("descriptors", len(raws)))

	result := make([]descriptor.IntegrationDescriptor, 0, len(raws))
	for _, raw := range raws {
		d, err := descriptor.Normalize(logical, raw)
		if err != nil {
			logger.Error("skipping integration: error occurred while loading", zap.Error(err))
			continue
		}
		logger.Debug("normalized integration", zap.Stringer("integration", d))
		result = append(result, d)
	}
	return result
}

func (r *Registry) rawDescriptors(logger *zap.Logger, file, logical string, kind entryKind) ([]descriptor.RawDescriptor, bool) {
	path := filepath.Join(r.dir, file)

	switch kind {
	case kindJSON, kindYAML:
		format := descriptor.FormatJSON
		if kind == kindYAML {
			format = descriptor.FormatYAML
		}
		raw, err := descriptor.ParseFile(path, format)
		if err != nil {
			logger.Error("skipping integration file: error occurred while parsing", zap.Error(err))
			return nil, false
		}
		return []descriptor.RawDescriptor{raw}, true
	case kindCode:
		build, ok := r.builders[logical]
		if !ok {
			logger.Warn("skipping integration file: no builder registered", zap.String("name", logical))
			return nil, false
		}
		variants := build()
		raws := make([]descriptor.RawDescriptor, 0, len(variants))
		for _, v := range variants {
			raws = append(raws, v.Descriptor)
		}
		return raws, true
	default:
		return nil, false
	}
}
