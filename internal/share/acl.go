package share

import (
	"context"

	"serwer-notatek/internal/database"
	"serwer-notatek/internal/models"
)

// AccessChecker decides allow/deny for (actor, action, share). Create
// checks run against an unpersisted draft, so they may only rely on the
// draft's prospective owner and type; read checks run against the stored
// row and may consult the invitation table.
type AccessChecker struct {
	store *database.Store
}

func NewAccessChecker(store *database.Store) *AccessChecker {
	return &AccessChecker{store: store}
}

func (c *AccessChecker) CanCreateShare(ctx context.Context, actorID int64, draft *models.Share) error {
	if draft.Type == models.ShareTypeApp {
		return ErrForbidden
	}
	if draft.OwnerID != actorID {
		return ErrForbidden
	}
	return nil
}

// CanInvite gates adding a recipient to a share. Only the owner may
// invite; the draft (share_id, user_id) pair itself carries no extra
// information, so the check is against the parent share.
func (c *AccessChecker) CanInvite(ctx context.Context, actorID int64, share *models.Share) error {
	if share.OwnerID != actorID {
		return ErrForbidden
	}
	return nil
}

// CanReadShare allows the owner and invited recipients.
func (c *AccessChecker) CanReadShare(ctx context.Context, actorID int64, share *models.Share) error {
	if share.OwnerID == actorID {
		return nil
	}
	isRecipient, err := c.store.IsShareRecipient(ctx, share.ID, actorID)
	if err != nil {
		return err
	}
	if !isRecipient {
		return ErrForbidden
	}
	return nil
}
