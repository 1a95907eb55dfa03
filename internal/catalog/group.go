package catalog

import "sort"

// ExtentGroup is the set of records sharing one exact declaration extent.
type ExtentGroup struct {
	Extent  Extent
	Records []*ClassRecord
}

// GroupByFile partitions records by declaring file.
func GroupByFile(records []*ClassRecord) map[string][]*ClassRecord {
	groups := make(map[string][]*ClassRecord)
	for _, rec := range records {
		groups[rec.File] = append(groups[rec.File], rec)
	}
	return groups
}

// GroupByExtent groups one file's records by exact extent and returns the
// groups sorted ascending by end line, end column as tiebreak. The patcher
// relies on this ordering to meet insertion points in a single pass, and on
// the column tiebreak when several classes end on the same line.
func GroupByExtent(records []*ClassRecord) []ExtentGroup {
	byExtent := make(map[Extent][]*ClassRecord)
	for _, rec := range records {
		byExtent[rec.Extent] = append(byExtent[rec.Extent], rec)
	}

	groups := make([]ExtentGroup, 0, len(byExtent))
	for extent, recs := range byExtent {
		groups = append(groups, ExtentGroup{Extent: extent, Records: recs})
	}
	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i].Extent, groups[j].Extent
		if a.EndLine != b.EndLine {
			return a.EndLine < b.EndLine
		}
		return a.EndCol < b.EndCol
	})
	return groups
}
