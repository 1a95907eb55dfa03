package catalog

import "testing"

func TestCommonPath(t *testing.T) {
	tests := []struct{ a, b, want string }{
		{"/proj", "/proj/src/a.cpp", "/proj"},
		{"/proj/src", "/proj/include/a.h", "/proj"},
		{"/proj", "/project/a.cpp", "/"},
		{"/a/b/c", "/a/b/c", "/a/b/c"},
		{"/x", "/y", "/"},
	}
	for _, tt := range tests {
		if got := CommonPath(tt.a, tt.b); got != tt.want {
			t.Errorf("CommonPath(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFilterProject(t *testing.T) {
	records := []*ClassRecord{
		{Name: "In", File: "/proj/src/a.cpp"},
		{Name: "Header", File: "/proj/include/a.h"},
		{Name: "System", File: "/usr/include/vector"},
		{Name: "Sneaky", File: "/project-other/a.h"}, // shares a string prefix only
	}
	kept := FilterProject(records, "/proj")
	if len(kept) != 2 {
		t.Fatalf("kept %d records, want 2: %+v", len(kept), kept)
	}
	for _, rec := range kept {
		if rec.Name != "In" && rec.Name != "Header" {
			t.Errorf("unexpected record kept: %+v", rec)
		}
	}
}

func TestFilterProjectTrailingSlash(t *testing.T) {
	records := []*ClassRecord{{Name: "A", File: "/proj/a.cpp"}}
	if kept := FilterProject(records, "/proj/"); len(kept) != 1 {
		t.Errorf("trailing slash on root should not change filtering, kept %d", len(kept))
	}
}
