package catalog

import (
	"path/filepath"
	"strings"
)

// FilterProject retains only records whose declaring file lies under the
// project root. Containment is decided by common-path comparison on whole
// path segments, so /proj never claims /project/x.h.
func FilterProject(records []*ClassRecord, projectRoot string) []*ClassRecord {
	root := filepath.Clean(projectRoot)
	var kept []*ClassRecord
	for _, rec := range records {
		if CommonPath(root, rec.File) == root {
			kept = append(kept, rec)
		}
	}
	return kept
}

// CommonPath returns the deepest directory shared by two cleaned paths,
// comparing segment-wise.
func CommonPath(a, b string) string {
	sep := string(filepath.Separator)
	as := strings.Split(filepath.Clean(a), sep)
	bs := strings.Split(filepath.Clean(b), sep)

	n := len(as)
	if len(bs) < n {
		n = len(bs)
	}
	i := 0
	for i < n && as[i] == bs[i] {
		i++
	}
	common := strings.Join(as[:i], sep)
	if common == "" && strings.HasPrefix(a, sep) {
		return sep
	}
	return common
}
