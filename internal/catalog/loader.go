package catalog

import (
	"embed"
	"os"

	"gopkg.in/yaml.v3"

	fperrors "github.com/felixgeelhaar/fundplan/internal/errors"
)

//go:embed builtin/catalog.yaml
var builtinCatalog embed.FS

const builtinPath = "builtin/catalog.yaml"

// Load returns the catalog at path, or the built-in catalog when path is empty.
// The returned catalog is validated and fingerprinted.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return LoadBuiltin()
	}
	return LoadFile(path)
}

// LoadBuiltin returns the catalog embedded in the binary.
func LoadBuiltin() (*Catalog, error) {
	data, err := builtinCatalog.ReadFile(builtinPath)
	if err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodeCatalogNotFound, "built-in catalog missing", err)
	}
	return Parse(data, "built-in catalog")
}

// LoadFile reads a catalog from a YAML file. The file replaces the built-in
// catalog entirely; there is no per-milestone layering.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fperrors.NewCatalogNotFoundError(path)
		}
		return nil, fperrors.Wrap(fperrors.ErrCodeFileReadFailed, "failed to read catalog file", err)
	}
	return Parse(data, path)
}

// Parse decodes and validates catalog YAML. source names the input in errors.
func Parse(data []byte, source string) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodeCatalogUnmarshal, "failed to parse catalog "+source, err).
			WithSuggestion("Check the YAML syntax of the catalog file")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	c.fingerprint = computeFingerprint(&c)
	return &c, nil
}

// MustLoadBuiltin is LoadBuiltin for tests and program initialisation where
// a broken embedded catalog is a programming error.
func MustLoadBuiltin() *Catalog {
	c, err := LoadBuiltin()
	if err != nil {
		panic(err)
	}
	return c
}
