package share

import (
	"context"
	"errors"
	"fmt"

	"serwer-notatek/internal/database"
	"serwer-notatek/internal/models"

	"github.com/jaevor/go-nanoid"
)

// Manager implements the share lifecycle: creation by folder or by note,
// the per-user invitation fan-out and the anonymous link read path.
type Manager struct {
	store *database.Store
	acl   *AccessChecker
}

func NewManager(store *database.Store) *Manager {
	return &Manager{
		store: store,
		acl:   NewAccessChecker(store),
	}
}

type CreateShareInput struct {
	FolderID string
	NoteID   string
}

func (m *Manager) generateShareID(ctx context.Context) (string, error) {
	maxRetries := 10

	generateID, err := nanoid.Standard(21)
	if err != nil {
		return "", fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}

	for i := 0; i < maxRetries; i++ {
		id := generateID()
		exists, err := m.store.ShareExists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to check for share existence: %w", err)
		}
		if !exists {
			return id, nil
		}
	}

	return "", fmt.Errorf("failed to generate a unique ID after %d attempts", maxRetries)
}

// CreateShare creates a folder share or a note link share, depending on
// which reference the input carries. Folder shares are idempotent per
// (owner, item): a second call returns the existing share.
func (m *Manager) CreateShare(ctx context.Context, ownerID int64, input CreateShareInput) (*models.Share, error) {
	var draft *models.Share

	switch {
	case input.FolderID != "" && input.NoteID != "":
		return nil, ErrAmbiguousItemRef

	case input.FolderID != "":
		item, err := m.store.GetItemByExternalID(ctx, ownerID, input.FolderID)
		if err != nil {
			return nil, err
		}
		if item == nil || item.ItemType != models.ItemTypeFolder {
			return nil, ErrItemNotFound
		}

		existing, err := m.store.GetFolderShare(ctx, ownerID, item.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}

		folderID := input.FolderID
		draft = &models.Share{
			Type:     models.ShareTypeFolder,
			ItemID:   item.ID,
			OwnerID:  ownerID,
			FolderID: &folderID,
		}

	case input.NoteID != "":
		item, err := m.store.GetItemByExternalID(ctx, ownerID, input.NoteID)
		if err != nil {
			return nil, err
		}
		if item == nil || item.ItemType != models.ItemTypeNote {
			return nil, ErrItemNotFound
		}

		noteID := input.NoteID
		draft = &models.Share{
			Type:    models.ShareTypeLink,
			ItemID:  item.ID,
			OwnerID: ownerID,
			NoteID:  &noteID,
		}

	default:
		return nil, ErrNoItemRef
	}

	if err := m.acl.CanCreateShare(ctx, ownerID, draft); err != nil {
		return nil, err
	}

	id, err := m.generateShareID(ctx)
	if err != nil {
		return nil, err
	}

	created, err := m.store.CreateShare(ctx, database.CreateShareParams{
		ID:               id,
		Type:             draft.Type,
		ItemID:           draft.ItemID,
		OwnerID:          draft.OwnerID,
		FolderExternalID: draft.FolderID,
		NoteExternalID:   draft.NoteID,
	})
	if errors.Is(err, database.ErrShareExists) {
		// Lost the race against a concurrent create of the same folder
		// share. The constraint is authoritative: return the winner.
		existing, getErr := m.store.GetFolderShare(ctx, ownerID, draft.ItemID)
		if getErr != nil {
			return nil, getErr
		}
		if existing == nil {
			return nil, err
		}
		return existing, nil
	}
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetShare loads a share for its owner or a recipient.
func (m *Manager) GetShare(ctx context.Context, actorID int64, id string) (*models.Share, error) {
	share, err := m.store.GetShareByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if share == nil {
		return nil, ErrShareNotFound
	}
	if err := m.acl.CanReadShare(ctx, actorID, share); err != nil {
		return nil, err
	}
	return share, nil
}

// ListByOwner returns up to limit shares plus a flag telling whether more
// pages exist.
func (m *Manager) ListByOwner(ctx context.Context, ownerID int64, limit int, offset int) ([]models.Share, bool, error) {
	shares, err := m.store.ListSharesByOwner(ctx, ownerID, limit+1, offset)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(shares) > limit
	if hasMore {
		shares = shares[:limit]
	}

	return shares, hasMore, nil
}

// ResolvePublicShare serves the anonymous link path. It deliberately
// bypasses the access checker: knowledge of the id is the credential.
// A share that exists but is not a link share reads as not found, so the
// route cannot be used to probe for private shares.
func (m *Manager) ResolvePublicShare(ctx context.Context, id string) (*models.Share, error) {
	share, err := m.store.GetShareByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if share == nil || share.Type != models.ShareTypeLink {
		return nil, ErrShareNotFound
	}
	return share, nil
}
