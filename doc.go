// Package texsrc fetches the source archive of a document and decodes it into
// an ordered list of text and binary files.
//
// A fetch runs one sequential pipeline: the payload is downloaded while
// progress is reported, its container format is sniffed (gzip, tar, zip, or
// plain text), the container is decoded, each file is classified, and the
// files are sorted with TeX sources first.
//
// # Quick Start
//
// Fetch and list the sources of an arXiv paper:
//
//	c, err := texsrc.NewClient()
//	if err != nil {
//	    return err
//	}
//	archive, err := c.Fetch(ctx, "2101.00001",
//	    texsrc.FetchWithProgress(func(ev texsrc.ProgressEvent) {
//	        fmt.Printf("%s %d%%\n", ev.Phase, ev.Percent)
//	    }),
//	)
//	if err != nil {
//	    return err
//	}
//	for _, e := range archive.Entries() {
//	    fmt.Println(e.Name)
//	}
//
// # Decoding without a network
//
// Use [Decode] to run the same pipeline over bytes obtained elsewhere:
//
//	archive := texsrc.Decode(texsrc.Payload{Data: data, Length: -1}, "2101.00001")
//
// # Failure handling
//
// Only retrieval failures are reported, as a [*FetchError] matching
// [ErrFetch]. Undecodable compression, invalid text and malformed tar headers
// degrade to raw text or binary entries instead of failing the fetch.
package texsrc
