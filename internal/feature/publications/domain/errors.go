// Package domain defines domain-level errors for the publications feature.
package domain

import "errors"

var (
	// ErrPublicationNotFound indicates that the publication does not exist.
	ErrPublicationNotFound = errors.New("publication not found")

	// ErrCommentNotFound indicates that the comment does not exist.
	ErrCommentNotFound = errors.New("comment not found")
)
