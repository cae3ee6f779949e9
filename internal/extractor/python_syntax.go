package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// FindRejected returns the first node the grammar accepts but a Python 3
// parser rejects: Python 2 print and exec statements, "except X, e" clauses,
// backtick repr strings and call arguments in an illegal order. It returns nil
// for valid source.
func (p *PythonExtractor) FindRejected(root *sitter.Node, sourceCode []byte) *sitter.Node {
	var found *sitter.Node

	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if found != nil {
			return
		}
		switch n.Type() {
		case "print_statement", "exec_statement":
			found = n
			return
		case "except_clause":
			for i := 0; i < int(n.ChildCount()); i++ {
				if n.Child(i).Type() == "," {
					found = n
					return
				}
			}
		case "string":
			if n.NamedChildCount() > 0 {
				if start := n.NamedChild(0); start.Type() == "string_start" && start.Content(sourceCode) == "`" {
					found = n
					return
				}
			}
		case "argument_list":
			if bad := misorderedArgument(n); bad != nil {
				found = bad
				return
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			visit(n.NamedChild(i))
		}
	}
	visit(root)

	return found
}

// misorderedArgument finds a positional argument after a keyword argument or
// after **kwargs, or *args after **kwargs.
func misorderedArgument(args *sitter.Node) *sitter.Node {
	keyword, doubleSplat := false, false
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		switch arg.Type() {
		case "comment":
		case "keyword_argument":
			keyword = true
		case "dictionary_splat":
			doubleSplat = true
		case "list_splat":
			if doubleSplat {
				return arg
			}
		default:
			if keyword || doubleSplat {
				return arg
			}
		}
	}
	return nil
}
