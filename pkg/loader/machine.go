package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nala-lattice/nala-go/pkg/element"
	"github.com/nala-lattice/nala-go/pkg/lattice"
)

// Definition file names inside a machine directory.
const (
	SectionsFile = "sections.yaml"
	LayoutsFile  = "layouts.yaml"
)

// Source names the inputs of a model. Elements entries may be files or
// directories; directories are walked recursively.
type Source struct {
	Elements []string
	Sections string
	Layouts  string
}

// MachineSource returns the conventional source for a machine directory:
// every YAML file under dir except the root definition files.
func MachineSource(dir string) Source {
	src := Source{Elements: []string{dir}}
	if p := filepath.Join(dir, SectionsFile); exists(p) {
		src.Sections = p
	}
	if p := filepath.Join(dir, LayoutsFile); exists(p) {
		src.Layouts = p
	}
	return src
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// LoadDirectory loads all elements from a directory and its subdirectories
// in lexical file order. Files named SectionsFile or LayoutsFile are
// skipped.
func LoadDirectory(dir string) ([]*element.Element, error) {
	var out []*element.Element
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAML(d.Name()) {
			return nil
		}
		switch strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())) {
		case "sections", "layouts":
			return nil
		}
		elems, err := LoadElements(path)
		if err != nil {
			return err
		}
		out = append(out, elems...)
		return nil
	})
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			return nil, err
		}
		return nil, &LoadError{File: dir, Message: "failed to walk directory", Cause: err}
	}
	return out, nil
}

// Load reads every input of src. Duplicate element names across files are
// rejected.
func Load(src Source) ([]*element.Element, lattice.SectionDefinitions, lattice.LayoutDefinitions, error) {
	var (
		elems    []*element.Element
		sections lattice.SectionDefinitions
		layouts  lattice.LayoutDefinitions
	)

	seen := make(map[string]bool)
	for _, p := range src.Elements {
		info, err := os.Stat(p)
		if err != nil {
			return nil, nil, layouts, &LoadError{File: p, Message: "failed to stat", Cause: err}
		}
		var batch []*element.Element
		if info.IsDir() {
			batch, err = LoadDirectory(p)
		} else {
			batch, err = LoadElements(p)
		}
		if err != nil {
			return nil, nil, layouts, err
		}
		for _, e := range batch {
			if seen[e.Name] {
				return nil, nil, layouts, &LoadError{
					File:    p,
					Message: fmt.Sprintf("element %q defined more than once", e.Name),
				}
			}
			seen[e.Name] = true
		}
		elems = append(elems, batch...)
	}

	if src.Sections != "" {
		defs, err := LoadSections(src.Sections)
		if err != nil {
			return nil, nil, layouts, err
		}
		sections = defs
	}
	if src.Layouts != "" {
		defs, err := LoadLayouts(src.Layouts)
		if err != nil {
			return nil, nil, layouts, err
		}
		layouts = defs
	}
	return elems, sections, layouts, nil
}

// LoadModel loads src and builds a model from it. opts are applied after
// the loaded definitions.
func LoadModel(src Source, opts ...lattice.Option) (*lattice.Model, error) {
	elems, sections, layouts, err := Load(src)
	if err != nil {
		return nil, err
	}
	all := make([]lattice.Option, 0, len(opts)+2)
	if src.Sections != "" {
		all = append(all, lattice.WithSections(sections))
	}
	if src.Layouts != "" {
		all = append(all, lattice.WithLayouts(layouts))
	}
	all = append(all, opts...)
	return lattice.New(elems, all...)
}

// LoadMachine builds a model from a machine directory.
func LoadMachine(dir string, opts ...lattice.Option) (*lattice.Model, error) {
	return LoadModel(MachineSource(dir), opts...)
}
