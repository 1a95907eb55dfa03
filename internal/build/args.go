package build

import "path/filepath"

// CompileFile returns the source path following the first -c flag, or ""
// when the command has no compile step.
func CompileFile(args []string) string {
	for i, a := range args {
		if a == "-c" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// OutputFile returns the path following the first -o flag, or "".
func OutputFile(args []string) string {
	for i, a := range args {
		if a == "-o" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// ParseArgs strips the -c and -o flags with their operands along with
// empty tokens, leaving only the flags a parse of the translation unit
// cares about (include dirs, defines, standards).
func ParseArgs(args []string) []string {
	out := make([]string, 0, len(args))
	skip := false
	for _, a := range args {
		if skip {
			skip = false
			continue
		}
		switch {
		case a == "-c" || a == "-o":
			skip = true
		case a == "":
		default:
			out = append(out, a)
		}
	}
	return out
}

// Substitute rewrites the command so tokens naming an original source
// file point at its generated copy instead. Both the literal token and
// its absolute form are checked against the mapping.
func Substitute(args []string, mapping map[string]string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if repl, ok := mapping[a]; ok {
			out[i] = repl
			continue
		}
		if abs, err := filepath.Abs(a); err == nil {
			if repl, ok := mapping[abs]; ok {
				out[i] = repl
				continue
			}
		}
		out[i] = a
	}
	return out
}
