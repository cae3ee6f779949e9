package extractor

import (
	"impgraph/internal/names"

	sitter "github.com/smacker/go-tree-sitter"
)

// LanguageExtractor defines the interface that each language grammar must implement.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	// Extensions lists the file suffixes handled by the grammar, dot included.
	Extensions() []string
	ExtractImports(root *sitter.Node, sourceCode []byte, filepath string) names.Set
	ExtractDefinitions(root *sitter.Node, sourceCode []byte, policy DefinitionPolicy) names.Set
	// FindRejected returns the first node the language's own parser would
	// reject although the grammar accepted it, or nil.
	FindRejected(root *sitter.Node, sourceCode []byte) *sitter.Node
}
