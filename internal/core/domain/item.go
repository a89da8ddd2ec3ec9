package domain

// SourceItem is a transient unit of content returned by a connector
// enumeration. It is never persisted: the discovery controller records its
// identifiers and the processing controller re-resolves the bytes later by
// replaying the same enumeration.
type SourceItem struct {
	// ID is the source-native identifier (Drive file ID, or
	// "pageID:filename" for Notion attachments).
	ID string

	// Name is the display filename ("report.pdf", "Project_Notes.txt").
	Name string

	// Content is the raw bytes, already fetched by the connector.
	Content []byte

	// LastModified is the source's modification timestamp, verbatim.
	LastModified string

	// DateCreated is the source's creation timestamp, if the source exposes one.
	DateCreated string

	// SourceSystem identifies the producing connector.
	SourceSystem SourceSystem

	// URL is the browser-facing location of the item.
	URL string

	// MIMEType is the content type reported by the source.
	MIMEType string
}
