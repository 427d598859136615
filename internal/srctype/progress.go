package srctype

// ProgressEvent represents a progress update while a source archive is fetched
// and decoded.
type ProgressEvent struct {
	// Phase identifies the current phase of the fetch.
	Phase Phase

	// BytesLoaded is the number of payload bytes received so far.
	BytesLoaded uint64

	// BytesTotal is the best-known payload size. When the server does not
	// declare a length it tracks BytesLoaded.
	BytesTotal uint64

	// Percent is the completion percentage in [0, 100].
	// Zero while the total is unknown.
	Percent int
}

// Phase identifies the current phase of a fetch.
type Phase uint8

// Fetch phases, in the order they are emitted.
const (
	// PhaseDownloading indicates payload bytes are being received.
	PhaseDownloading Phase = iota

	// PhaseExtracting indicates the payload is complete and being decoded.
	PhaseExtracting

	// PhaseDone indicates the entries are decoded and ordered.
	PhaseDone
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseDownloading:
		return "downloading"
	case PhaseExtracting:
		return "extracting"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates during a fetch.
// Calls are made synchronously from the fetching goroutine.
type ProgressFunc func(ProgressEvent)
