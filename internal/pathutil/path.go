// Package pathutil provides path manipulation for slash-separated entry names.
package pathutil

import "strings"

// Normalize converts a user-provided directory path to the form entry
// names are compared against.
//
// It performs the following transformations:
//   - Strips leading and trailing slashes: "/figs/" → "figs"
//   - Collapses consecutive slashes: "figs//png" → "figs/png"
//   - Converts empty string and "/" to root: "" → "."
//
// "." and ".." elements are preserved; entry names are never resolved.
func Normalize(p string) string {
	parts := strings.Split(p, "/")
	result := parts[:0]
	for _, part := range parts {
		if part != "" {
			result = append(result, part)
		}
	}
	if len(result) == 0 {
		return "."
	}
	return strings.Join(result, "/")
}

// DirPrefix converts a normalized directory to its prefix form.
// The root "." yields "", which matches every name.
func DirPrefix(dir string) string {
	if dir == "." {
		return ""
	}
	return dir + "/"
}

// Child extracts the immediate child of prefix from name.
// It reports false if name does not lie below prefix. isDir reports whether
// more path elements follow the child.
func Child(name, prefix string) (child string, isDir, ok bool) {
	rel, found := strings.CutPrefix(name, prefix)
	if !found || rel == "" {
		return "", false, false
	}
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		if i == 0 {
			return "", false, false
		}
		return rel[:i], true, true
	}
	return rel, false, true
}
