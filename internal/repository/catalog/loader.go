// Package catalog loads the product catalog from a JSON or YAML file.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	domcat "github.com/kailas-cloud/prodsearch/internal/domain/catalog"
	"github.com/kailas-cloud/prodsearch/internal/domain/product"
)

// Format is the on-disk catalog encoding.
type Format string

// Supported catalog formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format by file extension; unknown extensions read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads the catalog at path.
// A missing file fails with domain.ErrCatalogNotFound, an undecodable one with
// domain.ErrCatalogMalformed.
func LoadFile(path string) (domcat.Catalog, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domcat.Catalog{}, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, path)
		}
		return domcat.Catalog{}, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	cat, err := Load(f, FormatFromPath(path))
	if err != nil {
		return domcat.Catalog{}, fmt.Errorf("load %s: %w", path, err)
	}
	return cat, nil
}

// Load decodes a catalog from r. The source must hold a top-level list of products.
func Load(r io.Reader, format Format) (domcat.Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domcat.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	var records []productRecord
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &records)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&records)
		if err == nil {
			var extra json.RawMessage
			if !errors.Is(dec.Decode(&extra), io.EOF) {
				err = errors.New("trailing data after product list")
			}
		}
	default:
		return domcat.Catalog{}, fmt.Errorf("unsupported catalog format %q", format)
	}
	if err != nil {
		return domcat.Catalog{}, fmt.Errorf("%w: %w", domain.ErrCatalogMalformed, err)
	}
	// null or an empty document; an explicit [] is a valid empty catalog
	if records == nil {
		return domcat.Catalog{}, fmt.Errorf("%w: no product list", domain.ErrCatalogMalformed)
	}

	products := make([]product.Product, 0, len(records))
	for i, rec := range records {
		p, err := rec.toDomain()
		if err != nil {
			return domcat.Catalog{}, fmt.Errorf("%w: record %d: %w", domain.ErrCatalogMalformed, i, err)
		}
		products = append(products, p)
	}

	return domcat.New(products), nil
}
