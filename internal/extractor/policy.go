package extractor

import "fmt"

// ScopeKind is the kind of a definition that encloses another one.
type ScopeKind int

const (
	ScopeClass ScopeKind = iota
	ScopeFunction
)

// DefinitionPolicy decides whether a function, given the chain of definitions
// enclosing it (outermost first), counts as a standalone definition.
//
// This is a lexical heuristic. It never inspects binding semantics such as a
// "self" parameter or decorators.
type DefinitionPolicy func(enclosing []ScopeKind) bool

// MethodAwarePolicy keeps module-level functions, functions directly in a class
// body and functions nested in plain functions. A function nested inside a
// function that lives in a class is a method-local helper and is dropped.
func MethodAwarePolicy(enclosing []ScopeKind) bool {
	inClass := false
	for _, k := range enclosing {
		switch k {
		case ScopeClass:
			inClass = true
		case ScopeFunction:
			if inClass {
				return false
			}
		}
	}
	return true
}

// LegacyPolicy drops only functions defined directly in a class body; every
// other function, including helpers nested inside methods, counts.
func LegacyPolicy(enclosing []ScopeKind) bool {
	return len(enclosing) == 0 || enclosing[len(enclosing)-1] != ScopeClass
}

// PolicyByName maps a configuration value to a policy.
func PolicyByName(name string) (DefinitionPolicy, error) {
	switch name {
	case "", "method-aware":
		return MethodAwarePolicy, nil
	case "legacy":
		return LegacyPolicy, nil
	default:
		return nil, fmt.Errorf("unknown definition policy: %s", name)
	}
}
