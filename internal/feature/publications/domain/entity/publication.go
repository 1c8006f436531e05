// Package entity defines the domain entities for the publications feature.
package entity

// Publication is a forum post. Timestamps are Unix epoch milliseconds, the
// unit the remote contract uses, so local and remote records compare without
// conversion.
type Publication struct {
	ID       uint
	Title    string
	Content  string
	AuthorID uint

	// CreatedAt and ModifiedAt are epoch milliseconds. ModifiedAt equals
	// CreatedAt until the first edit.
	CreatedAt  int64
	ModifiedAt int64
}

// Comment is a rated reply to a publication. Stars is intended to be 1..5;
// the data layer does not enforce the range, callers do.
type Comment struct {
	ID            uint
	PublicationID uint
	AuthorID      uint
	Text          string
	Stars         int
	CreatedAt     int64
}

// PublicationStats is the read-time aggregate of a publication: its average
// rating (0.0 when uncommented), comment count and author display name.
// Never stored, recomputed on every read.
type PublicationStats struct {
	Publication   Publication
	AverageRating float64
	CommentCount  int64
	AuthorName    string
}
