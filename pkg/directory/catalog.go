package directory

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// Catalog bundles the department table and the doctor directory loaded from one listing.
type Catalog struct {
	Table     *Table
	Directory *Directory
}

type catalogFile struct {
	Departments []Department `yaml:"departments"`
	Locations   []Location   `yaml:"locations"`
	Doctors     []Doctor     `yaml:"doctors"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the catalog embedded in the binary. It is parsed once.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(bytes.NewReader(defaultCatalog))
		if err != nil {
			panic(fmt.Sprintf("directory: embedded catalog: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Load parses a YAML listing and validates its references.
func Load(r io.Reader) (*Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	table, err := newTable(f.Departments)
	if err != nil {
		return nil, err
	}
	dir, err := newDirectory(f.Doctors, f.Locations, table)
	if err != nil {
		return nil, err
	}
	return &Catalog{Table: table, Directory: dir}, nil
}
