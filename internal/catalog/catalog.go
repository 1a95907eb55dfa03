package catalog

import (
	"regexp"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"gcweave/internal/gen"
	"gcweave/internal/lang"
	"gcweave/internal/parser"
)

// typeNamePattern strips an optional leading class/const qualifier from a
// declaration spelling and captures the plain identifier.
var typeNamePattern = regexp.MustCompile(`(?:class|const)?\s?([_A-Za-z][_A-Za-z0-9]*)`)

// Catalog accumulates ClassRecords keyed by scope-qualified identity.
// Upsert has insert-or-replace semantics: the same logical declaration can
// surface more than once while recursing nested scopes, and the last-seen
// record for an identity wins. Insertion order is preserved for
// deterministic iteration.
type Catalog struct {
	records map[string]*ClassRecord
	order   []string
}

// New returns an empty Catalog.
func New() *Catalog {
	return &Catalog{records: make(map[string]*ClassRecord)}
}

// Upsert inserts a record, replacing any prior record with the same identity
// in place.
func (c *Catalog) Upsert(rec *ClassRecord) {
	key := rec.QualifiedName()
	if _, ok := c.records[key]; !ok {
		c.order = append(c.order, key)
	}
	c.records[key] = rec
}

// Len returns the number of distinct identities catalogued.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Records returns all records in insertion order.
func (c *Catalog) Records() []*ClassRecord {
	out := make([]*ClassRecord, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.records[key])
	}
	return out
}

// Build walks a parsed file pre-order and upserts a ClassRecord for every
// class/class-template declaration. The predicate is fixed: a class node
// kind carrying both a name and a body. Forward declarations have no body
// (and no closing brace to splice at) and are skipped.
func (c *Catalog) Build(root *tree_sitter.Node, source []byte, file string, spec *lang.Spec) {
	classKinds := toSet(spec.ClassNodeKinds)
	parser.Walk(root, func(node *tree_sitter.Node) bool {
		if !classKinds[node.Kind()] {
			return true
		}
		rec := newClassRecord(node, source, file, spec)
		if rec != nil {
			c.Upsert(rec)
		}
		return true // nested classes are declarations in their own right
	})
}

// newClassRecord builds a ClassRecord from a class declaration node, or nil
// when the node is not a definition (no body). Anonymous classes are
// cataloged under the empty name; generation never spells the class name,
// so they are instrumented like any other definition.
func newClassRecord(node *tree_sitter.Node, source []byte, file string, spec *lang.Spec) *ClassRecord {
	body := node.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	name := ""
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		name = stripTypeQualifier(parser.NodeText(nameNode, source))
	}

	bodyText := parser.NodeText(body, source)
	start := node.StartPosition()
	end := node.EndPosition()

	return &ClassRecord{
		Name:   name,
		Scopes: Scopes(node, source, spec),
		File:   file,
		Extent: Extent{
			StartLine: safeRowToLine(start.Row),
			StartCol:  safeColToCol(start.Column),
			EndLine:   safeRowToLine(end.Row),
			EndCol:    safeColToCol(end.Column),
		},
		Bases:        baseClasses(node, source),
		Fields:       fieldNames(body, source),
		Instrumented: strings.Contains(bodyText, gen.BeginMarker),
	}
}

// stripTypeQualifier extracts the plain identifier from a spelling that may
// carry a leading class/const qualifier token, falling back to the raw
// spelling when the pattern does not match.
func stripTypeQualifier(spelling string) string {
	m := typeNamePattern.FindStringSubmatch(spelling)
	if m == nil {
		return spelling
	}
	return m[1]
}

// baseClasses returns the qualifier-stripped base type names of a class
// declaration, in base-list order. Access specifiers inside the base clause
// are not type names and are skipped.
func baseClasses(node *tree_sitter.Node, source []byte) []string {
	var bases []string
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != "base_class_clause" {
			continue
		}
		for j := uint(0); j < child.NamedChildCount(); j++ {
			base := child.NamedChild(j)
			if base == nil || base.Kind() == "access_specifier" {
				continue
			}
			if name := stripTypeQualifier(parser.NodeText(base, source)); name != "" {
				bases = append(bases, name)
			}
		}
	}
	return bases
}

// fieldNames returns the data-member names declared directly in a class
// body, in declaration order. Method declarations, static members and
// nested types are not fields. A declaration with several declarators
// (`int a, b;`) yields one field per declarator.
func fieldNames(body *tree_sitter.Node, source []byte) []string {
	var fields []string
	for i := uint(0); i < body.ChildCount(); i++ {
		decl := body.Child(i)
		if decl == nil || decl.Kind() != "field_declaration" {
			continue
		}
		fields = append(fields, fieldDeclNames(decl, source)...)
	}
	return fields
}

// fieldDeclNames extracts the declared names from one field_declaration.
func fieldDeclNames(decl *tree_sitter.Node, source []byte) []string {
	var names []string
	for i := uint(0); i < decl.ChildCount(); i++ {
		child := decl.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "storage_class_specifier":
			// static members are not per-instance fields
			if parser.NodeText(child, source) == "static" {
				return nil
			}
		case "function_declarator":
			// a member function declaration, not a field
			return nil
		}
		if decl.FieldNameForChild(uint32(i)) != "declarator" {
			continue
		}
		if name := declaratorName(child, source); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// declaratorName descends pointer/array/reference declarators to the
// declared identifier.
func declaratorName(node *tree_sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	switch node.Kind() {
	case "field_identifier", "identifier":
		return parser.NodeText(node, source)
	case "pointer_declarator", "array_declarator", "reference_declarator", "init_declarator":
		if inner := node.ChildByFieldName("declarator"); inner != nil {
			return declaratorName(inner, source)
		}
		// reference_declarator carries its declarator as an unnamed field
		for i := uint(0); i < node.NamedChildCount(); i++ {
			if name := declaratorName(node.NamedChild(i), source); name != "" {
				return name
			}
		}
	}
	return ""
}

func safeRowToLine(row uint) int {
	const maxInt = int(^uint(0) >> 1)
	if row > uint(maxInt-1) {
		return maxInt
	}
	return int(row) + 1
}

func safeColToCol(col uint) int {
	return safeRowToLine(col)
}
