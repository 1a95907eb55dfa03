// Package gen renders the GC root-connection members spliced into a class
// body. The output is an ordered sequence of lines, each carrying its own
// trailing newline, so the patcher can append them verbatim between the
// class body and its closing brace.
package gen

import "fmt"

// BeginMarker tags a generated block. A class body that already contains it
// is skipped by the catalog, so re-running the tool over its own output
// cannot duplicate blocks.
const BeginMarker = "// BEGIN GC_PTR"

// EndMarker closes a generated block.
const EndMarker = "// END GC_PTR"

// ConnectLines returns one base-connect call per base class followed by one
// field-connect call per field, in declaration order. The field's static
// type is forwarded via decltype so the GC primitives overload per type.
func ConnectLines(bases, fields []string) []string {
	lines := make([]string, 0, len(bases)+len(fields))
	for _, base := range bases {
		lines = append(lines, fmt.Sprintf("    memory::call_ConnectBaseToRoot<%s>(this, rootPtr);\n", base))
	}
	for _, field := range fields {
		lines = append(lines, fmt.Sprintf("    memory::call_ConnectFieldToRoot<decltype(%s)>(%s, rootPtr);\n", field, field))
	}
	return lines
}

// DisconnectLines mirrors ConnectLines with the disconnect primitives,
// additionally parameterized by the is-root flag.
func DisconnectLines(bases, fields []string) []string {
	lines := make([]string, 0, len(bases)+len(fields))
	for _, base := range bases {
		lines = append(lines, fmt.Sprintf("    memory::call_DisconnectBaseFromRoot<%s>(this, isRoot, rootPtr);\n", base))
	}
	for _, field := range fields {
		lines = append(lines, fmt.Sprintf("    memory::call_DisconnectFieldFromRoot<decltype(%s)>(%s, isRoot, rootPtr);\n", field, field))
	}
	return lines
}

// Block returns the full guarded member block for a class: public access
// marker, banner comments, connectToRoot and disconnectFromRoot methods.
// A class with no bases and no fields contributes no generated code at all
// and Block returns nil.
func Block(bases, fields []string) []string {
	connect := ConnectLines(bases, fields)
	disconnect := DisconnectLines(bases, fields)
	if len(connect) == 0 && len(disconnect) == 0 {
		return nil
	}

	lines := []string{
		"\n",
		" public:\n",
		"  // GENERATED CODE FOR GC_PTR\n",
		"  " + BeginMarker + "\n",
	}
	if len(connect) > 0 {
		lines = append(lines, "  void connectToRoot(const void * rootPtr) const {\n")
		lines = append(lines, connect...)
		lines = append(lines, "  }\n", "\n")
	}
	if len(disconnect) > 0 {
		lines = append(lines, "  void disconnectFromRoot(const bool isRoot, const void * rootPtr) const {\n")
		lines = append(lines, disconnect...)
		lines = append(lines, "  }\n")
	}
	lines = append(lines, "  "+EndMarker+"\n")
	return lines
}
