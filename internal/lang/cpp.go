package lang

func init() {
	Register(&Spec{
		Language:       CPP,
		FileExtensions: []string{".cpp", ".h", ".hpp", ".cc", ".cxx", ".hxx", ".hh", ".ixx", ".cppm", ".ccm"},
		// class_specifier covers plain classes and class templates alike;
		// a templated class is a class_specifier under template_declaration.
		ClassNodeKinds: []string{"class_specifier"},
		FieldNodeKinds: []string{"field_declaration"},
		NamespaceNodeKinds: []string{
			"namespace_definition",
		},
		// A nested class definition sits inside a field_declaration, and a
		// class defined together with a variable sits inside a declaration;
		// both must be climbed through to reach the enclosing scope.
		ScopeWrapperKinds: []string{
			"declaration",
			"declaration_list",
			"field_declaration",
			"field_declaration_list",
			"template_declaration",
		},
		IncludeNodeKinds: []string{"preproc_include"},
	})
}
