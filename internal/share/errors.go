package share

import "errors"

var (
	// ErrNoItemRef: a create request referenced neither a folder nor a note.
	ErrNoItemRef = errors.New("either folder_id or note_id must be provided")
	// ErrAmbiguousItemRef: a create request referenced both.
	ErrAmbiguousItemRef = errors.New("only one of folder_id and note_id may be provided")
	// ErrItemNotFound covers missing items and items owned by someone
	// else; the owner-scoped lookup cannot tell them apart.
	ErrItemNotFound = errors.New("folder or note not found")
	// ErrShareNotFound covers both a missing share and, on the public
	// path, a share that is not a link share.
	ErrShareNotFound      = errors.New("share not found")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrRecipientNotFound  = errors.New("recipient not found")
	ErrForbidden          = errors.New("operation not allowed for this user")
	// ErrAlreadyShared is wrapped with the recipient email at the call site.
	ErrAlreadyShared = errors.New("already shared with user")
)
