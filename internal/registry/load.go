package registry

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

const defaultRegistryPath = "defaults/registry.yaml"

//go:embed defaults/registry.yaml
var defaultRegistryFS embed.FS

// allModes is the runmodes key whose columns apply to every run mode.
const allModes = "all"

// File is the YAML document a Registry is built from.
type File struct {
	RunModes   map[string]ModeFile `yaml:"runmodes" json:"runmodes"`
	Values     map[string][]string `yaml:"values" json:"values"`
	Defaults   map[string]string   `yaml:"defaults" json:"defaults"`
	Extensions map[string][]string `yaml:"extensions" json:"extensions"`
	Files      map[string]string   `yaml:"files" json:"files"`
}

// ModeFile lists the columns of one run mode.
type ModeFile struct {
	Required     []string          `yaml:"required" json:"required"`
	Optional     []string          `yaml:"optional,omitempty" json:"optional,omitempty"`
	Alternatives [][]string        `yaml:"alternatives,omitempty" json:"alternatives,omitempty"`
	Defaults     map[string]string `yaml:"defaults,omitempty" json:"defaults,omitempty"`
}

// Load returns the built-in registry.
func Load() (*Registry, error) {
	return loadFromFS(defaultRegistryFS, defaultRegistryPath)
}

// LoadFile builds a registry from a YAML document on disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}
	return r, nil
}

// MustLoad is Load for callers that cannot recover from a broken embedded
// registry.
func MustLoad() *Registry {
	r, err := Load()
	if err != nil {
		panic(err)
	}
	return r
}

func loadFromFS(fsys fs.FS, name string) (*Registry, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	return Parse(data)
}

// Parse builds a registry from YAML.
func Parse(data []byte) (*Registry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	return build(f)
}

func build(f File) (*Registry, error) {
	common := f.RunModes[allModes]

	r := &Registry{
		modes:      make(map[RunMode]modeSpec, len(RunModes)),
		values:     make(map[string][]string, len(f.Values)),
		defaults:   make(map[string]string, len(f.Defaults)),
		extensions: make(map[FileKind][]string, len(f.Extensions)),
		files:      make(map[string]FileKind, len(f.Files)),
	}

	for name := range f.RunModes {
		if name == allModes {
			continue
		}
		if _, err := ParseRunMode(name); err != nil {
			return nil, err
		}
	}

	for _, mode := range RunModes {
		mf, ok := f.RunModes[string(mode)]
		if !ok {
			return nil, fmt.Errorf("runmode %s is not defined", mode)
		}
		required := append(append([]string(nil), common.Required...), mf.Required...)
		if len(required) == 0 {
			return nil, fmt.Errorf("runmode %s has no required columns", mode)
		}
		for _, group := range mf.Alternatives {
			for _, col := range group {
				if !slices.Contains(required, col) {
					return nil, fmt.Errorf("runmode %s: alternative column %q is not required", mode, col)
				}
			}
		}
		spec := modeSpec{
			required:     required,
			optional:     append(append([]string(nil), common.Optional...), mf.Optional...),
			alternatives: mf.Alternatives,
			defaults:     make(map[string]string, len(mf.Defaults)),
		}
		for col, v := range mf.Defaults {
			spec.defaults[col] = v
		}
		r.modes[mode] = spec
	}

	for col, vals := range f.Values {
		if len(vals) == 0 {
			return nil, fmt.Errorf("column %s has an empty value set", col)
		}
		r.values[col] = append([]string(nil), vals...)
	}
	for col, v := range f.Defaults {
		if vals, ok := r.values[col]; ok && !slices.Contains(vals, v) {
			return nil, fmt.Errorf("default %q for %s is not an accepted value", v, col)
		}
		r.defaults[col] = v
	}
	for kind, exts := range f.Extensions {
		if len(exts) == 0 {
			return nil, fmt.Errorf("file kind %s has no extensions", kind)
		}
		r.extensions[FileKind(kind)] = append([]string(nil), exts...)
	}
	for col, kind := range f.Files {
		if _, ok := r.extensions[FileKind(kind)]; !ok {
			return nil, fmt.Errorf("column %s refers to unknown file kind %s", col, kind)
		}
		r.files[col] = FileKind(kind)
	}

	return r, nil
}

// Document returns the registry restricted to one run mode, in the same
// shape it is loaded from.
func (r *Registry) Document(mode RunMode) File {
	spec := r.modes[mode]
	mf := ModeFile{
		Required:     r.Required(mode),
		Optional:     r.Optional(mode),
		Alternatives: r.Alternatives(mode),
		Defaults:     make(map[string]string, len(spec.defaults)),
	}
	for col, v := range spec.defaults {
		mf.Defaults[col] = v
	}
	f := File{
		RunModes:   map[string]ModeFile{string(mode): mf},
		Values:     map[string][]string{},
		Defaults:   map[string]string{},
		Extensions: map[string][]string{},
		Files:      map[string]string{},
	}

	cols := append(append([]string(nil), spec.required...), spec.optional...)
	for _, col := range cols {
		if vals, ok := r.values[col]; ok {
			f.Values[col] = append([]string(nil), vals...)
		}
		if v, ok := r.defaults[col]; ok {
			f.Defaults[col] = v
		}
		if kind, ok := r.files[col]; ok {
			f.Files[col] = string(kind)
			f.Extensions[string(kind)] = r.Extensions(kind)
		}
	}
	return f
}
