package extractor

import (
	"strings"

	"impgraph/internal/names"
)

// SourceUnit is one analyzed source file and the names derived from it.
type SourceUnit struct {
	Location    string   `json:"location"`     // Absolute path, unique per unit
	ProjectName string   `json:"project_name"` // Enclosing project name
	ModulePath  []string `json:"module_path"`  // Dotted position in the project namespace

	RawImports  names.Set `json:"-"` // Identifiers referenced by import statements
	Definitions names.Set `json:"-"` // Class and standalone function names
	ExportNames names.Set `json:"-"` // Every plausible way to reference this unit

	ParseFailed bool  `json:"parse_failed"`
	ParseErr    error `json:"-"`

	// Populated by the resolver.
	InternalImports names.Set `json:"-"`
	ExternalImports names.Set `json:"-"`
	Classified      bool      `json:"-"`
}

func newUnit(location, projectName string) *SourceUnit {
	project, modulePath := DeriveModulePath(location, projectName)
	return &SourceUnit{
		Location:    location,
		ProjectName: project,
		ModulePath:  modulePath,
		RawImports:  make(names.Set),
		Definitions: make(names.Set),
		ExportNames: make(names.Set),
	}
}

// Depth is the number of module path segments.
func (u *SourceUnit) Depth() int {
	return len(u.ModulePath)
}

// DisplayName is the dotted module name, e.g. "pkg.sub.mod".
func (u *SourceUnit) DisplayName() string {
	return strings.Join(u.ModulePath, ".")
}

func (u *SourceUnit) fail(err error) {
	u.ParseFailed = true
	u.ParseErr = err
	u.RawImports = make(names.Set)
	u.Definitions = make(names.Set)
	u.ExportNames = make(names.Set)
}
