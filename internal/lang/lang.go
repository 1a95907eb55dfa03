package lang

// Language identifies a source language recognized by the wrapper.
type Language string

const (
	CPP Language = "cpp"
)

// Spec defines the tree-sitter node kinds the instrumentation pipeline
// needs for a language.
type Spec struct {
	Language       Language
	FileExtensions []string

	// ClassNodeKinds are the declaration kinds eligible for instrumentation.
	ClassNodeKinds []string
	// FieldNodeKinds are data-member declaration kinds inside a class body.
	FieldNodeKinds []string
	// NamespaceNodeKinds open a namespace scope for identity purposes.
	NamespaceNodeKinds []string
	// ScopeWrapperKinds are structural nodes that sit between a declaration
	// and its enclosing scope without being a scope themselves.
	ScopeWrapperKinds []string
	// IncludeNodeKinds are preprocessor include directives.
	IncludeNodeKinds []string
}

// registry maps file extensions to language specs.
var registry = map[string]*Spec{}

// Register adds a Spec to the global registry.
func Register(spec *Spec) {
	for _, ext := range spec.FileExtensions {
		registry[ext] = spec
	}
}

// ForExtension returns the Spec for a file extension (e.g. ".cpp").
func ForExtension(ext string) *Spec {
	return registry[ext]
}

// ForLanguage returns the Spec for a language.
func ForLanguage(lang Language) *Spec {
	for _, spec := range registry {
		if spec.Language == lang {
			return spec
		}
	}
	return nil
}

// LanguageForExtension returns the Language for a file extension.
func LanguageForExtension(ext string) (Language, bool) {
	spec := registry[ext]
	if spec == nil {
		return "", false
	}
	return spec.Language, true
}
