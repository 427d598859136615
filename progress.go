package texsrc

import "github.com/meigma/texsrc/internal/srctype"

// Re-export progress types from internal/srctype.
type (
	// ProgressEvent represents a progress update during a fetch.
	ProgressEvent = srctype.ProgressEvent

	// Phase identifies the current phase of a fetch.
	Phase = srctype.Phase

	// ProgressFunc receives progress updates during a fetch.
	// Calls are made synchronously from the fetching goroutine.
	ProgressFunc = srctype.ProgressFunc
)

// Re-export phase constants.
const (
	// PhaseDownloading indicates payload bytes are being received.
	PhaseDownloading = srctype.PhaseDownloading

	// PhaseExtracting indicates the payload is complete and being decoded.
	PhaseExtracting = srctype.PhaseExtracting

	// PhaseDone indicates the entries are decoded and ordered.
	PhaseDone = srctype.PhaseDone
)
