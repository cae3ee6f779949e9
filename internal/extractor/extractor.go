package extractor

import (
	"context"
	"fmt"
	"os"

	"impgraph/internal/exports"

	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor orchestrates the extraction process using a language-specific extractor.
type Extractor struct {
	langExtractor LanguageExtractor
	langName      string
	policy        DefinitionPolicy
}

// NewExtractor creates a new extractor for a given language. A nil policy
// selects MethodAwarePolicy.
func NewExtractor(lang string, policy DefinitionPolicy) (*Extractor, error) {
	var langExt LanguageExtractor
	switch lang {
	case "python":
		langExt = &PythonExtractor{}
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
	if policy == nil {
		policy = MethodAwarePolicy
	}
	return &Extractor{langExtractor: langExt, langName: lang, policy: policy}, nil
}

// Extensions returns the file suffixes this extractor understands.
func (e *Extractor) Extensions() []string {
	return e.langExtractor.Extensions()
}

// ExtractFromFile reads and analyzes one source file. Failures are recorded on
// the returned unit rather than returned, so a bad file never stops a scan.
func (e *Extractor) ExtractFromFile(ctx context.Context, filepath, projectName string) *SourceUnit {
	unit := newUnit(filepath, projectName)
	sourceCode, err := os.ReadFile(filepath)
	if err != nil {
		unit.fail(&ParseError{Path: filepath, Err: fmt.Errorf("failed to read file: %w", err)})
		return unit
	}
	e.extract(ctx, unit, sourceCode)
	return unit
}

// ExtractFromSource analyzes source code as if it were stored at filepath.
func (e *Extractor) ExtractFromSource(ctx context.Context, filepath, projectName string, sourceCode []byte) *SourceUnit {
	unit := newUnit(filepath, projectName)
	e.extract(ctx, unit, sourceCode)
	return unit
}

func (e *Extractor) extract(ctx context.Context, unit *SourceUnit, sourceCode []byte) {
	parser := sitter.NewParser()
	parser.SetLanguage(e.langExtractor.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, sourceCode)
	if err != nil {
		unit.fail(&ParseError{Path: unit.Location, Err: err})
		return
	}

	root := tree.RootNode()
	if root.HasError() {
		unit.fail(&ParseError{Path: unit.Location, Line: firstErrorLine(root), Err: ErrSyntax})
		return
	}
	if bad := e.langExtractor.FindRejected(root, sourceCode); bad != nil {
		unit.fail(&ParseError{Path: unit.Location, Line: int(bad.StartPoint().Row + 1), Err: ErrSyntax})
		return
	}

	unit.RawImports = e.langExtractor.ExtractImports(root, sourceCode, unit.Location)
	unit.Definitions = e.langExtractor.ExtractDefinitions(root, sourceCode, e.policy)
	unit.ExportNames = exports.Enumerate(unit.ProjectName, unit.ModulePath, unit.Definitions)
}

// firstErrorLine descends into the first erroneous subtree and reports its line.
func firstErrorLine(node *sitter.Node) int {
	for {
		if node.Type() == "ERROR" || node.IsMissing() {
			return int(node.StartPoint().Row + 1)
		}
		var next *sitter.Node
		for i := 0; i < int(node.ChildCount()); i++ {
			if child := node.Child(i); child != nil && child.HasError() {
				next = child
				break
			}
		}
		if next == nil {
			return int(node.StartPoint().Row + 1)
		}
		node = next
	}
}
