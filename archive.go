package texsrc

import (
	"slices"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/texsrc/internal/pathutil"
)

// Archive is the decoded, ordered content of one fetched payload.
//
// An Archive is immutable and safe for concurrent use.
type Archive struct {
	kind      Kind
	digest    digest.Digest
	size      int
	mediaType string
	entries   []Entry
	byName    map[string]int
}

func newArchive(kind Kind, payload Payload, entries []Entry) *Archive {
	byName := make(map[string]int, len(entries))
	for i, e := range entries {
		if _, dup := byName[e.Name]; !dup {
			byName[e.Name] = i
		}
	}
	return &Archive{
		kind:      kind,
		digest:    digest.FromBytes(payload.Data),
		size:      len(payload.Data),
		mediaType: payload.MediaType,
		entries:   entries,
		byName:    byName,
	}
}

// Kind returns the detected container format.
func (a *Archive) Kind() Kind {
	return a.kind
}

// Digest returns the sha256 digest of the raw payload as fetched.
func (a *Archive) Digest() digest.Digest {
	return a.digest
}

// Size returns the raw payload size in bytes.
func (a *Archive) Size() int {
	return a.size
}

// MediaType returns the media type declared by the transport, if any.
func (a *Archive) MediaType() string {
	return a.mediaType
}

// Len returns the number of entries.
func (a *Archive) Len() int {
	return len(a.entries)
}

// Entries returns the entries in presentation order.
// The returned slice is a copy; the entries' Data must not be modified.
func (a *Archive) Entries() []Entry {
	return slices.Clone(a.entries)
}

// Entry returns the entry at index i in presentation order.
func (a *Archive) Entry(i int) Entry {
	return a.entries[i]
}

// Lookup returns the entry with the given name.
func (a *Archive) Lookup(name string) (Entry, bool) {
	i, ok := a.byName[name]
	if !ok {
		return Entry{}, false
	}
	return a.entries[i], true
}

// Primary returns the first primary source entry, the natural candidate for
// auto-selection.
func (a *Archive) Primary() (Entry, bool) {
	if len(a.entries) > 0 && a.entries[0].IsPrimarySource {
		return a.entries[0], true
	}
	return Entry{}, false
}

// DirEntry is an immediate child of a directory in an Archive.
type DirEntry struct {
	// Name is the base name of the child.
	Name string

	// Path is the full slash-separated path of the child.
	Path string

	// IsDir reports whether the child is an implied directory.
	IsDir bool
}

// ReadDir lists the immediate children of dir, in the order they first
// appear in presentation order. Directories are implied by entry names;
// archives carry no directory entries of their own. The root is "." or "".
func (a *Archive) ReadDir(dir string) []DirEntry {
	dir = pathutil.Normalize(dir)
	prefix := pathutil.DirPrefix(dir)

	var out []DirEntry
	seen := make(map[string]bool)
	for _, e := range a.entries {
		child, isDir, ok := pathutil.Child(e.Name, prefix)
		if !ok || seen[child] {
			continue
		}
		seen[child] = true
		out = append(out, DirEntry{Name: child, Path: prefix + child, IsDir: isDir})
	}
	return out
}
