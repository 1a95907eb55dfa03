// Package catalog discovers class declarations in a parsed translation unit
// and models them as ClassRecords keyed by scope-qualified identity.
package catalog

import "strings"

// ScopeKind classifies an enclosing lexical scope.
type ScopeKind string

const (
	ScopeNamespace ScopeKind = "namespace"
	ScopeClass     ScopeKind = "class"
)

// Scope is one enclosing lexical scope. Scopes are value types used purely
// for identity and never imply ownership of the underlying AST.
type Scope struct {
	Kind ScopeKind
	Name string
}

// Extent is the (start, end) line/column span of a declaration, 1-based,
// resolvable against the exact source bytes the parse consumed.
type Extent struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// ClassRecord is a discovered class or class-template declaration and its
// structural facts. Identity is (Name, Scopes); everything else is an
// attribute of the last-seen declaration for that identity.
type ClassRecord struct {
	Name   string
	Scopes []Scope // outermost first
	File   string  // absolute path of the declaring file
	Extent Extent
	Bases  []string // qualifier-stripped base type names, declaration order
	Fields []string // data-member names, declaration order
	// Instrumented is true when the class body already carries a generated
	// block marker; such classes are matched but never patched again.
	Instrumented bool
}

// QualifiedName returns the structural identity key: the scope chain and
// simple name joined with "::", each scope segment tagged with its kind so
// that a namespace and a class of the same name cannot collide.
func (r *ClassRecord) QualifiedName() string {
	var b strings.Builder
	for _, s := range r.Scopes {
		b.WriteString(string(s.Kind))
		b.WriteByte(' ')
		b.WriteString(s.Name)
		b.WriteString("::")
	}
	b.WriteString(r.Name)
	return b.String()
}
