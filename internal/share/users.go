package share

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"serwer-notatek/internal/database"
	"serwer-notatek/internal/models"
)

// Recipient is the only view of an invitee that leaves the server:
// acceptance state plus the email, nothing else.
type Recipient struct {
	ID         int64         `json:"id"`
	IsAccepted bool          `json:"is_accepted"`
	User       RecipientUser `json:"user"`
}

type RecipientUser struct {
	Email string `json:"email"`
}

// Invite adds a recipient to a share by email. The recipient account is
// created on the fly if the email is unknown; inviting the same email
// twice fails.
func (m *Manager) Invite(ctx context.Context, actorID int64, shareID string, email string) (*models.ShareUser, error) {
	share, err := m.store.GetShareByID(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if share == nil {
		return nil, ErrShareNotFound
	}

	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrRecipientNotFound
	}

	if err := m.acl.CanInvite(ctx, actorID, share); err != nil {
		return nil, err
	}

	existing, err := m.store.GetShareUserByEmail(ctx, share.ID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyShared, email)
	}

	recipient, err := m.store.GetOrCreateUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	var shareUser *models.ShareUser
	txErr := m.store.ExecTx(ctx, func(q *database.Queries) error {
		var err error
		shareUser, err = q.CreateShareUser(ctx, share.ID, recipient.ID)
		if err != nil {
			return err
		}

		payload := map[string]interface{}{
			"share_id":  share.ID,
			"type":      share.Type,
			"folder_id": share.FolderID,
			"note_id":   share.NoteID,
		}
		return q.LogEvent(ctx, recipient.ID, "item_shared_with_you", payload)
	})
	if txErr != nil {
		if errors.Is(txErr, database.ErrInvitationExists) {
			// Raced with an identical invite; report it like the
			// pre-check would have.
			return nil, fmt.Errorf("%w: %s", ErrAlreadyShared, email)
		}
		return nil, txErr
	}

	return shareUser, nil
}

// ListRecipients returns the invitations on a share. Reading the list is
// gated on the share itself, not on the individual invitations.
func (m *Manager) ListRecipients(ctx context.Context, actorID int64, shareID string) ([]Recipient, error) {
	share, err := m.store.GetShareByID(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if share == nil {
		return nil, ErrShareNotFound
	}

	if err := m.acl.CanReadShare(ctx, actorID, share); err != nil {
		return nil, err
	}

	shareUsers, err := m.store.ListShareUsers(ctx, share.ID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]int64, 0, len(shareUsers))
	for _, su := range shareUsers {
		userIDs = append(userIDs, su.UserID)
	}

	emails := map[int64]string{}
	if len(userIDs) > 0 {
		users, err := m.store.GetUsersByIDs(ctx, userIDs)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			emails[u.ID] = u.Email
		}
	}

	recipients := make([]Recipient, 0, len(shareUsers))
	for _, su := range shareUsers {
		recipients = append(recipients, Recipient{
			ID:         su.ID,
			IsAccepted: su.IsAccepted,
			User:       RecipientUser{Email: emails[su.UserID]},
		})
	}

	return recipients, nil
}

// SetInvitationStatus lets the invited user accept (or un-accept) their
// invitation. Nobody else, the share owner included, may flip the flag.
func (m *Manager) SetInvitationStatus(ctx context.Context, actorID int64, shareUserID int64, accepted bool) (*models.ShareUser, error) {
	shareUser, err := m.store.GetShareUserByID(ctx, shareUserID)
	if err != nil {
		return nil, err
	}
	if shareUser == nil {
		return nil, ErrInvitationNotFound
	}
	if shareUser.UserID != actorID {
		return nil, ErrForbidden
	}

	share, err := m.store.GetShareByID(ctx, shareUser.ShareID)
	if err != nil {
		return nil, err
	}

	txErr := m.store.ExecTx(ctx, func(q *database.Queries) error {
		updated, err := q.SetShareUserAccepted(ctx, shareUser.ID, accepted)
		if err != nil {
			return err
		}
		if !updated {
			return ErrInvitationNotFound
		}

		if share == nil || !accepted {
			return nil
		}
		payload := map[string]interface{}{
			"share_id":      share.ID,
			"share_user_id": shareUser.ID,
		}
		return q.LogEvent(ctx, share.OwnerID, "share_invitation_accepted", payload)
	})
	if txErr != nil {
		return nil, txErr
	}

	shareUser.IsAccepted = accepted
	return shareUser, nil
}

// ListInvitations returns the invitations addressed to the current user.
func (m *Manager) ListInvitations(ctx context.Context, userID int64, limit int, offset int) ([]database.Invitation, error) {
	return m.store.ListInvitationsForUser(ctx, userID, limit, offset)
}
