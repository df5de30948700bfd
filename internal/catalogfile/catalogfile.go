// Package catalogfile loads user unit definitions from YAML files and
// turns them into named units layered on top of the built-in catalog.
//
// File format:
//
//	units:
//	  - name: furlong
//	    aliases: [fur]
//	    represents: "201.168 m"
//	  - name: smoot
//	    represents: "1.702 m"
//	    prefixes: true
package catalogfile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tbuckley/quanta/internal/catalog"
	"github.com/tbuckley/quanta/internal/log"
	"github.com/tbuckley/quanta/internal/parse"
	"github.com/tbuckley/quanta/internal/unit"
)

var ErrBadDefinition = errors.New("invalid unit definition")

// Definition is one user unit entry.
type Definition struct {
	Name       string   `yaml:"name"`
	Aliases    []string `yaml:"aliases"`
	LongNames  []string `yaml:"long_names"`
	Represents string   `yaml:"represents"`
	Prefixes   bool     `yaml:"prefixes"`
}

// File is the top-level YAML document.
type File struct {
	Units []Definition `yaml:"units"`
}

// Load reads and decodes one catalog file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-supplied catalog path
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}
	return &f, nil
}

// layeredCatalog resolves names against units defined earlier in the same
// file before falling back to the base catalog.
type layeredCatalog struct {
	base  parse.Catalog
	local map[string]unit.Unit
}

func (l *layeredCatalog) Lookup(name string) (unit.Unit, bool) {
	if u, ok := l.local[name]; ok {
		return u, true
	}
	return l.base.Lookup(name)
}

func (l *layeredCatalog) Names() []string {
	names := l.base.Names()
	for n := range l.local {
		names = append(names, n)
	}
	return names
}

// Build resolves each definition's represents expression against the given
// catalog and constructs the named units. Definitions may reference units
// defined earlier in the same file.
func Build(f *File, cat parse.Catalog) ([]unit.Unit, error) {
	local := make(map[string]unit.Unit)
	r := parse.New(&layeredCatalog{base: cat, local: local})

	var out []unit.Unit
	for i, d := range f.Units {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: units[%d]: name is required", ErrBadDefinition, i)
		}
		if d.Represents == "" {
			return nil, fmt.Errorf("%w: units[%d] (%s): represents is required", ErrBadDefinition, i, d.Name)
		}
		rep, err := r.Parse(d.Represents)
		if err != nil {
			return nil, fmt.Errorf("units[%d] (%s): %w", i, d.Name, err)
		}

		short := append([]string{d.Name}, d.Aliases...)
		u, err := unit.NewNamed(short, rep, d.LongNames...)
		if err != nil {
			return nil, fmt.Errorf("units[%d] (%s): %w", i, d.Name, err)
		}
		out = append(out, u)
		for _, n := range u.Names() {
			local[n] = u
		}

		if d.Prefixes {
			for _, p := range catalog.SIPrefixes {
				scaled, err := unit.Scaled(complex(p.Factor, 0), u)
				if err != nil {
					continue
				}
				pu, err := unit.NewPrefixUnit([]string{p.Symbol + d.Name}, scaled)
				if err != nil {
					continue
				}
				out = append(out, pu)
				local[pu.Name()] = pu
			}
		}

		log.Debug(log.CatConfig, "loaded user unit", "name", d.Name, "represents", d.Represents)
	}
	return out, nil
}

// LoadAll loads every path and builds the combined unit list.
func LoadAll(paths []string, cat parse.Catalog) ([]unit.Unit, error) {
	var out []unit.Unit
	for _, p := range paths {
		f, err := Load(p)
		if err != nil {
			return nil, err
		}
		units, err := Build(f, cat)
		if err != nil {
			return nil, err
		}
		out = append(out, units...)
	}
	return out, nil
}
