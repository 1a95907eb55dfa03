package catalog

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"gcweave/internal/lang"
	"gcweave/internal/parser"
)

// Scopes returns the ordered chain of enclosing namespace/class scopes of a
// node, outermost first. The walk ascends lexical parents, treats structural
// wrapper nodes (declaration lists, template wrappers) as transparent, and
// stops at the first ancestor that is neither a namespace nor a class.
func Scopes(node *tree_sitter.Node, source []byte, spec *lang.Spec) []Scope {
	namespaceKinds := toSet(spec.NamespaceNodeKinds)
	classKinds := toSet(spec.ClassNodeKinds)
	wrapperKinds := toSet(spec.ScopeWrapperKinds)

	var chain []Scope // innermost first while walking
walk:
	for p := node.Parent(); p != nil; p = p.Parent() {
		kind := p.Kind()
		switch {
		case namespaceKinds[kind]:
			chain = append(chain, Scope{Kind: ScopeNamespace, Name: scopeName(p, source)})
		case classKinds[kind]:
			chain = append(chain, Scope{Kind: ScopeClass, Name: scopeName(p, source)})
		case wrapperKinds[kind]:
			// transparent, keep ascending
		default:
			break walk
		}
	}

	// reverse to outermost-first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// scopeName returns the declared name of a scope node. Anonymous namespaces
// have no name field and yield "".
func scopeName(node *tree_sitter.Node, source []byte) string {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	return parser.NodeText(nameNode, source)
}

func toSet(kinds []string) map[string]bool {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}
