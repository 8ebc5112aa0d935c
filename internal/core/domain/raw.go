package domain

// RawText is an imported file before its format is stripped.
type RawText struct {
	// URI is the original location, usually a file path.
	URI string

	// MIMEType is the content type if known (e.g., "text/markdown").
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// ExtractedText is narratable plain text recovered from a RawText.
type ExtractedText struct {
	// Title is taken from the document (first heading, <title>) or the file name.
	Title string

	// Text is the plain text content.
	Text string

	// Format names the normaliser that produced the text.
	Format string
}

// ChangeType represents the type of file change seen by the watcher.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified file.
	ChangeUpdated

	// ChangeDeleted indicates a removed file.
	ChangeDeleted
)

// String returns the string representation.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return unknownDescription
	}
}

// FileChange is a change event for a file in a watched folder.
type FileChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Path is the affected file.
	Path string
}
