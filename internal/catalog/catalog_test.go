package catalog

import (
	"testing"

	"gcweave/internal/lang"
	"gcweave/internal/parser"
)

func buildFrom(t *testing.T, source, file string) *Catalog {
	t.Helper()
	spec := lang.ForLanguage(lang.CPP)
	if spec == nil {
		t.Fatal("CPP spec not registered")
	}
	tree, err := parser.Parse(lang.CPP, []byte(source))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(func() { tree.Close() })

	c := New()
	c.Build(tree.RootNode(), []byte(source), file, spec)
	return c
}

func single(t *testing.T, c *Catalog) *ClassRecord {
	t.Helper()
	recs := c.Records()
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1: %+v", len(recs), recs)
	}
	return recs[0]
}

func TestBuildSimpleClass(t *testing.T) {
	src := "class Foo : public Base {\n  int bar;\n};\n"
	rec := single(t, buildFrom(t, src, "/proj/a.cpp"))

	if rec.Name != "Foo" {
		t.Errorf("Name = %q, want Foo", rec.Name)
	}
	if len(rec.Bases) != 1 || rec.Bases[0] != "Base" {
		t.Errorf("Bases = %v, want [Base]", rec.Bases)
	}
	if len(rec.Fields) != 1 || rec.Fields[0] != "bar" {
		t.Errorf("Fields = %v, want [bar]", rec.Fields)
	}
	if rec.Extent.StartLine != 1 || rec.Extent.EndLine != 3 {
		t.Errorf("Extent = %+v, want lines 1..3", rec.Extent)
	}
	// the closing brace sits at 0-based index EndCol-2 of its line
	if rec.Extent.EndCol != 2 {
		t.Errorf("EndCol = %d, want 2 (just past '}')", rec.Extent.EndCol)
	}
	if rec.Instrumented {
		t.Error("fresh class should not be Instrumented")
	}
}

func TestBuildScopeChain(t *testing.T) {
	src := "namespace outer { namespace inner { class A { class B { int x; }; }; } }\n"
	c := buildFrom(t, src, "/proj/a.cpp")
	recs := c.Records()
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}

	var a, b *ClassRecord
	for _, r := range recs {
		switch r.Name {
		case "A":
			a = r
		case "B":
			b = r
		}
	}
	if a == nil || b == nil {
		t.Fatalf("missing records: %+v", recs)
	}

	wantA := []Scope{{ScopeNamespace, "outer"}, {ScopeNamespace, "inner"}}
	if len(a.Scopes) != len(wantA) {
		t.Fatalf("A scopes = %+v, want %+v", a.Scopes, wantA)
	}
	for i := range wantA {
		if a.Scopes[i] != wantA[i] {
			t.Errorf("A scope %d = %+v, want %+v", i, a.Scopes[i], wantA[i])
		}
	}

	if len(b.Scopes) != 3 || b.Scopes[2] != (Scope{ScopeClass, "A"}) {
		t.Errorf("B scopes = %+v, want [... class A]", b.Scopes)
	}
	if a.QualifiedName() == b.QualifiedName() {
		t.Error("distinct classes must have distinct identities")
	}
}

func TestNestedSameNameClassesStayDistinct(t *testing.T) {
	src := `class A {
  class Inner {
    int x;
  };
};

class B {
  class Inner {
    int y;
  };
};
`
	c := buildFrom(t, src, "/proj/a.cpp")
	if c.Len() != 4 {
		t.Fatalf("got %d records, want 4: %+v", c.Len(), c.Records())
	}

	var inners []*ClassRecord
	for _, r := range c.Records() {
		if r.Name == "Inner" {
			inners = append(inners, r)
		}
	}
	if len(inners) != 2 {
		t.Fatalf("got %d Inner records, want 2", len(inners))
	}
	if inners[0].QualifiedName() == inners[1].QualifiedName() {
		t.Fatalf("same-named nested classes collided: %q", inners[0].QualifiedName())
	}

	byOuter := map[string][]string{}
	for _, r := range inners {
		if len(r.Scopes) != 1 || r.Scopes[0].Kind != ScopeClass {
			t.Fatalf("Inner scopes = %+v, want one enclosing class", r.Scopes)
		}
		byOuter[r.Scopes[0].Name] = r.Fields
	}
	if got := byOuter["A"]; len(got) != 1 || got[0] != "x" {
		t.Errorf("A::Inner fields = %v, want [x]", got)
	}
	if got := byOuter["B"]; len(got) != 1 || got[0] != "y" {
		t.Errorf("B::Inner fields = %v, want [y]", got)
	}
}

func TestBuildAnonymousClass(t *testing.T) {
	src := "class {\n  int x;\n} obj;\n"
	rec := single(t, buildFrom(t, src, "/proj/a.cpp"))
	if rec.Name != "" {
		t.Errorf("Name = %q, want empty", rec.Name)
	}
	if len(rec.Fields) != 1 || rec.Fields[0] != "x" {
		t.Errorf("Fields = %v, want [x]", rec.Fields)
	}
	if rec.Extent.EndLine != 3 {
		t.Errorf("EndLine = %d, want 3", rec.Extent.EndLine)
	}
}

func TestBuildUpsertLastWins(t *testing.T) {
	c := New()
	first := &ClassRecord{Name: "A", File: "/proj/a.h", Extent: Extent{EndLine: 1}}
	second := &ClassRecord{Name: "A", File: "/proj/a.h", Extent: Extent{EndLine: 9}}
	c.Upsert(first)
	c.Upsert(second)
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
	if got := c.Records()[0].Extent.EndLine; got != 9 {
		t.Errorf("EndLine = %d, want 9 (last-seen wins)", got)
	}
}

func TestBuildRoundTripStable(t *testing.T) {
	src := "namespace n { class A : public B { int x; }; class C {}; }\n"
	c1 := buildFrom(t, src, "/proj/a.cpp")
	c2 := buildFrom(t, src, "/proj/a.cpp")
	r1, r2 := c1.Records(), c2.Records()
	if len(r1) != len(r2) {
		t.Fatalf("record counts differ: %d vs %d", len(r1), len(r2))
	}
	for i := range r1 {
		if r1[i].QualifiedName() != r2[i].QualifiedName() || r1[i].Extent != r2[i].Extent {
			t.Errorf("record %d differs: %+v vs %+v", i, r1[i], r2[i])
		}
	}
}

func TestBuildSkipsForwardDeclaration(t *testing.T) {
	src := "class Fwd;\nclass Real { int x; };\n"
	rec := single(t, buildFrom(t, src, "/proj/a.cpp"))
	if rec.Name != "Real" {
		t.Errorf("Name = %q, want Real (forward declaration skipped)", rec.Name)
	}
}

func TestBuildTemplateClass(t *testing.T) {
	src := "template <typename T>\nclass Holder {\n  T value;\n};\n"
	rec := single(t, buildFrom(t, src, "/proj/a.cpp"))
	if rec.Name != "Holder" {
		t.Errorf("Name = %q, want Holder", rec.Name)
	}
	if len(rec.Fields) != 1 || rec.Fields[0] != "value" {
		t.Errorf("Fields = %v, want [value]", rec.Fields)
	}
	if len(rec.Scopes) != 0 {
		t.Errorf("Scopes = %+v, want none (template wrapper is transparent)", rec.Scopes)
	}
}

func TestFieldExtraction(t *testing.T) {
	src := `class Mixed {
  int a, b;
  char *p;
  long arr[4];
  static int shared;
  void method();
  int afterMethod;
};
`
	rec := single(t, buildFrom(t, src, "/proj/a.cpp"))
	want := []string{"a", "b", "p", "arr", "afterMethod"}
	if len(rec.Fields) != len(want) {
		t.Fatalf("Fields = %v, want %v", rec.Fields, want)
	}
	for i := range want {
		if rec.Fields[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, rec.Fields[i], want[i])
		}
	}
}

func TestNestedClassFieldsDoNotLeak(t *testing.T) {
	src := "class Outer {\n  int mine;\n  class Inner { int theirs; };\n};\n"
	c := buildFrom(t, src, "/proj/a.cpp")
	for _, rec := range c.Records() {
		switch rec.Name {
		case "Outer":
			if len(rec.Fields) != 1 || rec.Fields[0] != "mine" {
				t.Errorf("Outer.Fields = %v, want [mine]", rec.Fields)
			}
		case "Inner":
			if len(rec.Fields) != 1 || rec.Fields[0] != "theirs" {
				t.Errorf("Inner.Fields = %v, want [theirs]", rec.Fields)
			}
		}
	}
}

func TestTemplateFieldType(t *testing.T) {
	src := "class Foo : public Base {\n  GcPtr<Bar> bar;\n};\n"
	rec := single(t, buildFrom(t, src, "/proj/a.cpp"))
	if len(rec.Fields) != 1 || rec.Fields[0] != "bar" {
		t.Errorf("Fields = %v, want [bar]", rec.Fields)
	}
}

func TestMultipleBases(t *testing.T) {
	src := "class D : public A, protected B, C {\n  int x;\n};\n"
	rec := single(t, buildFrom(t, src, "/proj/a.cpp"))
	want := []string{"A", "B", "C"}
	if len(rec.Bases) != len(want) {
		t.Fatalf("Bases = %v, want %v", rec.Bases, want)
	}
	for i := range want {
		if rec.Bases[i] != want[i] {
			t.Errorf("base %d = %q, want %q", i, rec.Bases[i], want[i])
		}
	}
}

func TestInstrumentedDetection(t *testing.T) {
	src := `class Foo : public Base {
  int bar;

 public:
  // GENERATED CODE FOR GC_PTR
  // BEGIN GC_PTR
  void connectToRoot(const void * rootPtr) const {
    memory::call_ConnectBaseToRoot<Base>(this, rootPtr);
  }
  // END GC_PTR
};
`
	rec := single(t, buildFrom(t, src, "/proj/a.cpp"))
	if !rec.Instrumented {
		t.Error("class carrying the generated marker should be Instrumented")
	}
}

func TestStripTypeQualifier(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Base", "Base"},
		{"class Base", "Base"},
		{"const Base", "Base"},
		{"_Priv9", "_Priv9"},
		{"123", "123"}, // no identifier match: raw spelling fallback
	}
	for _, tt := range tests {
		if got := stripTypeQualifier(tt.in); got != tt.want {
			t.Errorf("stripTypeQualifier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
