package catalog

import "testing"

func TestGroupByFile(t *testing.T) {
	records := []*ClassRecord{
		{Name: "A", File: "/p/a.cpp"},
		{Name: "B", File: "/p/b.cpp"},
		{Name: "C", File: "/p/a.cpp"},
	}
	groups := GroupByFile(records)
	if len(groups) != 2 {
		t.Fatalf("got %d files, want 2", len(groups))
	}
	if len(groups["/p/a.cpp"]) != 2 || len(groups["/p/b.cpp"]) != 1 {
		t.Errorf("group sizes wrong: %+v", groups)
	}
}

func TestGroupByExtentSorted(t *testing.T) {
	records := []*ClassRecord{
		{Name: "Late", Extent: Extent{EndLine: 9, EndCol: 2}},
		{Name: "Early", Extent: Extent{EndLine: 2, EndCol: 2}},
		{Name: "SameLineRight", Extent: Extent{EndLine: 5, EndCol: 40}},
		{Name: "SameLineLeft", Extent: Extent{EndLine: 5, EndCol: 14}},
	}
	groups := GroupByExtent(records)
	if len(groups) != 4 {
		t.Fatalf("got %d groups, want 4", len(groups))
	}
	wantOrder := []string{"Early", "SameLineLeft", "SameLineRight", "Late"}
	for i, want := range wantOrder {
		if groups[i].Records[0].Name != want {
			t.Errorf("group %d = %s, want %s", i, groups[i].Records[0].Name, want)
		}
	}
}

func TestGroupByExtentSharedExtent(t *testing.T) {
	ext := Extent{StartLine: 1, StartCol: 1, EndLine: 3, EndCol: 2}
	records := []*ClassRecord{
		{Name: "A", Extent: ext},
		{Name: "B", Extent: ext},
	}
	groups := GroupByExtent(records)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if len(groups[0].Records) != 2 {
		t.Errorf("shared extent group has %d records, want 2", len(groups[0].Records))
	}
}
