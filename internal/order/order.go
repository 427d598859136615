// Package order sorts decoded entries for presentation.
package order

import (
	"slices"
	"strings"

	"github.com/meigma/texsrc/internal/srctype"
)

// Sort orders entries in place: primary sources first, then by name.
// Names compare byte-wise, so "B.tex" sorts before "a.tex".
// The sort is stable.
func Sort(entries []srctype.Entry) {
	slices.SortStableFunc(entries, Compare)
}

// Compare is the ordering used by Sort.
func Compare(a, b srctype.Entry) int {
	if a.IsPrimarySource != b.IsPrimarySource {
		if a.IsPrimarySource {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Name, b.Name)
}
