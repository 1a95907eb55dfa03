// Package frontend is the AST front end boundary: it turns a compile file
// plus its compilation flags into parsed source files with cursor/extent
// access. Quoted includes that resolve to files on disk are parsed too,
// recursively, so classes declared in in-project headers are visible the
// way a preprocessing front end would see them. System (angle-bracket) and
// unresolvable includes are skipped; the project filter would exclude them
// anyway.
package frontend

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"gcweave/internal/lang"
	"gcweave/internal/parser"
)

// File is one parsed source file of a translation unit. Source holds the
// exact bytes the parse consumed, so extents resolved against it are valid.
type File struct {
	Path   string // absolute
	Source []byte
	Tree   *tree_sitter.Tree
}

// Unit is a parsed translation unit: the compile file first, then every
// resolved include in discovery order.
type Unit struct {
	Files []*File
	// Errors counts ERROR nodes across all parsed files. Tree-sitter
	// recovers silently, so a nonzero count means the catalog is built from
	// an approximated tree.
	Errors int
}

// Close releases all parse trees.
func (u *Unit) Close() {
	for _, f := range u.Files {
		f.Tree.Close()
	}
	u.Files = nil
}

// Parse parses the compile file and its resolvable quoted includes. args is
// the derived parse-argument list (compilation flags without -c/-o pairs);
// only the -I search directories are consulted.
func Parse(path string, args []string) (*Unit, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	spec := lang.ForExtension(filepath.Ext(abs))
	if spec == nil {
		return nil, fmt.Errorf("no language registered for %s", abs)
	}

	unit := &Unit{}
	visited := map[string]bool{}
	if err := parseInto(unit, abs, spec, IncludeDirs(args), visited); err != nil {
		return nil, err
	}
	return unit, nil
}

// parseInto parses one file, appends it to the unit, and recurses into its
// quoted includes. The visited set breaks include cycles.
func parseInto(unit *Unit, abs string, spec *lang.Spec, searchDirs []string, visited map[string]bool) error {
	if visited[abs] {
		return nil
	}
	visited[abs] = true

	source, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("read %s: %w", abs, err)
	}
	tree, err := parser.Parse(spec.Language, source)
	if err != nil {
		return fmt.Errorf("parse %s: %w", abs, err)
	}

	f := &File{Path: abs, Source: source, Tree: tree}
	unit.Files = append(unit.Files, f)
	unit.Errors += parser.CountErrorNodes(tree.RootNode())

	for _, inc := range quotedIncludes(tree.RootNode(), source, spec) {
		resolved, ok := resolveInclude(inc, filepath.Dir(abs), searchDirs)
		if !ok {
			slog.Debug("frontend.include.skip", "include", inc, "from", abs)
			continue
		}
		if lang.ForExtension(filepath.Ext(resolved)) == nil {
			continue
		}
		if err := parseInto(unit, resolved, spec, searchDirs, visited); err != nil {
			return err
		}
	}
	return nil
}

// quotedIncludes returns the paths of `#include "..."` directives in a
// parsed file. Angle-bracket includes are system headers and skipped.
func quotedIncludes(root *tree_sitter.Node, source []byte, spec *lang.Spec) []string {
	includeKinds := map[string]bool{}
	for _, k := range spec.IncludeNodeKinds {
		includeKinds[k] = true
	}

	var includes []string
	parser.Walk(root, func(node *tree_sitter.Node) bool {
		if !includeKinds[node.Kind()] {
			return true
		}
		pathNode := node.ChildByFieldName("path")
		if pathNode == nil || pathNode.Kind() != "string_literal" {
			return false
		}
		text := strings.Trim(parser.NodeText(pathNode, source), `"`)
		if text != "" {
			includes = append(includes, text)
		}
		return false
	})
	return includes
}

// resolveInclude resolves a quoted include against the including file's
// directory first, then the -I search directories, in order.
func resolveInclude(include, fileDir string, searchDirs []string) (string, bool) {
	for _, dir := range append([]string{fileDir}, searchDirs...) {
		candidate := filepath.Join(dir, include)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			abs, err := filepath.Abs(candidate)
			if err == nil {
				return abs, true
			}
		}
	}
	return "", false
}

// IncludeDirs extracts -I search directories from compilation flags. Both
// the joined form (-Idir) and the split form (-I dir) are accepted.
func IncludeDirs(args []string) []string {
	var dirs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-I":
			if i+1 < len(args) {
				dirs = append(dirs, args[i+1])
				i++
			}
		case strings.HasPrefix(arg, "-I"):
			dirs = append(dirs, arg[2:])
		}
	}
	return dirs
}
