package lang

import "testing"

func TestForExtension(t *testing.T) {
	tests := []struct {
		ext  string
		lang Language
	}{
		{".cpp", CPP},
		{".h", CPP},
		{".hpp", CPP},
		{".cc", CPP},
		{".cxx", CPP},
		{".hh", CPP},
	}
	for _, tt := range tests {
		spec := ForExtension(tt.ext)
		if spec == nil {
			t.Errorf("ForExtension(%q) = nil, want %s", tt.ext, tt.lang)
			continue
		}
		if spec.Language != tt.lang {
			t.Errorf("ForExtension(%q).Language = %s, want %s", tt.ext, spec.Language, tt.lang)
		}
	}
}

func TestUnknownExtension(t *testing.T) {
	for _, ext := range []string{".c", ".go", ".py", ".o", ""} {
		if spec := ForExtension(ext); spec != nil {
			t.Errorf("ForExtension(%q) should be nil, got %v", ext, spec)
		}
	}
}

func TestCPPSpec(t *testing.T) {
	spec := ForLanguage(CPP)
	if spec == nil {
		t.Fatal("CPP spec not registered")
	}
	if len(spec.ClassNodeKinds) != 1 || spec.ClassNodeKinds[0] != "class_specifier" {
		t.Errorf("ClassNodeKinds = %v, want [class_specifier]", spec.ClassNodeKinds)
	}
	if len(spec.FieldNodeKinds) != 1 || spec.FieldNodeKinds[0] != "field_declaration" {
		t.Errorf("FieldNodeKinds = %v, want [field_declaration]", spec.FieldNodeKinds)
	}
}

func TestLanguageForExtension(t *testing.T) {
	if l, ok := LanguageForExtension(".cpp"); !ok || l != CPP {
		t.Errorf("LanguageForExtension(.cpp) = %s, %v", l, ok)
	}
	if _, ok := LanguageForExtension(".rs"); ok {
		t.Error("LanguageForExtension(.rs) should not resolve")
	}
}
