package database

import (
	"context"
	"errors"
	"time"

	"serwer-notatek/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrShareExists = errors.New("a folder share already exists for this item")
var ErrInvitationExists = errors.New("this user is already invited to the share")

type CreateShareParams struct {
	ID               string
	Type             models.ShareType
	ItemID           int64
	OwnerID          int64
	FolderExternalID *string
	NoteExternalID   *string
}

func (q *Queries) CreateShare(ctx context.Context, arg CreateShareParams) (*models.Share, error) {
	query := `
		INSERT INTO shares (id, share_type, item_id, owner_id, folder_external_id, note_external_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, share_type, item_id, owner_id, folder_external_id, note_external_id, created_at
	`
	row := q.db.QueryRow(ctx, query,
		arg.ID,
		arg.Type,
		arg.ItemID,
		arg.OwnerID,
		arg.FolderExternalID,
		arg.NoteExternalID,
		time.Now(),
	)

	var share models.Share
	err := row.Scan(
		&share.ID,
		&share.Type,
		&share.ItemID,
		&share.OwnerID,
		&share.FolderID,
		&share.NoteID,
		&share.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrShareExists
		}
		return nil, err
	}

	return &share, nil
}

func (q *Queries) GetShareByID(ctx context.Context, id string) (*models.Share, error) {
	query := `
		SELECT id, share_type, item_id, owner_id, folder_external_id, note_external_id, created_at
		FROM shares
		WHERE id = $1
	`
	var share models.Share
	err := q.db.QueryRow(ctx, query, id).Scan(
		&share.ID,
		&share.Type,
		&share.ItemID,
		&share.OwnerID,
		&share.FolderID,
		&share.NoteID,
		&share.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &share, nil
}

// GetFolderShare returns the single folder share for (owner, item), if any.
func (q *Queries) GetFolderShare(ctx context.Context, ownerID int64, itemID int64) (*models.Share, error) {
	query := `
		SELECT id, share_type, item_id, owner_id, folder_external_id, note_external_id, created_at
		FROM shares
		WHERE owner_id = $1 AND item_id = $2 AND share_type = 'folder'
	`
	var share models.Share
	err := q.db.QueryRow(ctx, query, ownerID, itemID).Scan(
		&share.ID,
		&share.Type,
		&share.ItemID,
		&share.OwnerID,
		&share.FolderID,
		&share.NoteID,
		&share.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &share, nil
}

func (q *Queries) ShareExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM shares WHERE id = $1)"
	err := q.db.QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (q *Queries) ListSharesByOwner(ctx context.Context, ownerID int64, limit int, offset int) ([]models.Share, error) {
	query := `
		SELECT id, share_type, item_id, owner_id, folder_external_id, note_external_id, created_at
		FROM shares
		WHERE owner_id = $1
		ORDER BY created_at DESC, id LIMIT $2 OFFSET $3
	`
	rows, err := q.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []models.Share
	for rows.Next() {
		var share models.Share
		err := rows.Scan(
			&share.ID,
			&share.Type,
			&share.ItemID,
			&share.OwnerID,
			&share.FolderID,
			&share.NoteID,
			&share.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		shares = append(shares, share)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if shares == nil {
		return []models.Share{}, nil
	}

	return shares, nil
}

func (q *Queries) CreateShareUser(ctx context.Context, shareID string, userID int64) (*models.ShareUser, error) {
	query := `
		INSERT INTO share_users (share_id, user_id)
		VALUES ($1, $2)
		RETURNING id, share_id, user_id, is_accepted, created_at
	`
	row := q.db.QueryRow(ctx, query, shareID, userID)

	var su models.ShareUser
	err := row.Scan(
		&su.ID,
		&su.ShareID,
		&su.UserID,
		&su.IsAccepted,
		&su.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrInvitationExists
		}
		return nil, err
	}

	return &su, nil
}

func (q *Queries) GetShareUserByID(ctx context.Context, id int64) (*models.ShareUser, error) {
	query := `
		SELECT id, share_id, user_id, is_accepted, created_at
		FROM share_users
		WHERE id = $1
	`
	var su models.ShareUser
	err := q.db.QueryRow(ctx, query, id).Scan(
		&su.ID,
		&su.ShareID,
		&su.UserID,
		&su.IsAccepted,
		&su.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &su, nil
}

func (q *Queries) GetShareUserByEmail(ctx context.Context, shareID string, email string) (*models.ShareUser, error) {
	query := `
		SELECT su.id, su.share_id, su.user_id, su.is_accepted, su.created_at
		FROM share_users su
		JOIN users u ON su.user_id = u.id
		WHERE su.share_id = $1 AND u.email = $2
	`
	var su models.ShareUser
	err := q.db.QueryRow(ctx, query, shareID, email).Scan(
		&su.ID,
		&su.ShareID,
		&su.UserID,
		&su.IsAccepted,
		&su.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &su, nil
}

func (q *Queries) ListShareUsers(ctx context.Context, shareID string) ([]models.ShareUser, error) {
	query := `
		SELECT id, share_id, user_id, is_accepted, created_at
		FROM share_users
		WHERE share_id = $1
		ORDER BY id
	`
	rows, err := q.db.Query(ctx, query, shareID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shareUsers []models.ShareUser
	for rows.Next() {
		var su models.ShareUser
		err := rows.Scan(
			&su.ID,
			&su.ShareID,
			&su.UserID,
			&su.IsAccepted,
			&su.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		shareUsers = append(shareUsers, su)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if shareUsers == nil {
		return []models.ShareUser{}, nil
	}

	return shareUsers, nil
}

type Invitation struct {
	models.ShareUser
	ShareType models.ShareType `json:"share_type"`
	FolderID  *string          `json:"folder_id,omitempty"`
	NoteID    *string          `json:"note_id,omitempty"`
}

// ListInvitationsForUser returns the invitations addressed to a user,
// together with enough share metadata for a client to render them.
func (q *Queries) ListInvitationsForUser(ctx context.Context, userID int64, limit int, offset int) ([]Invitation, error) {
	query := `
		SELECT
			su.id, su.share_id, su.user_id, su.is_accepted, su.created_at,
			s.share_type, s.folder_external_id, s.note_external_id
		FROM share_users su
		JOIN shares s ON su.share_id = s.id
		WHERE su.user_id = $1
		ORDER BY su.created_at DESC, su.id LIMIT $2 OFFSET $3
	`
	rows, err := q.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []Invitation
	for rows.Next() {
		var inv Invitation
		err := rows.Scan(
			&inv.ID, &inv.ShareID, &inv.UserID, &inv.IsAccepted, &inv.CreatedAt,
			&inv.ShareType, &inv.FolderID, &inv.NoteID,
		)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if invitations == nil {
		return []Invitation{}, nil
	}

	return invitations, nil
}

func (q *Queries) SetShareUserAccepted(ctx context.Context, id int64, accepted bool) (bool, error) {
	query := `UPDATE share_users SET is_accepted = $1 WHERE id = $2`
	res, err := q.db.Exec(ctx, query, accepted, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (q *Queries) IsShareRecipient(ctx context.Context, shareID string, userID int64) (bool, error) {
	var isRecipient bool
	query := `SELECT EXISTS(SELECT 1 FROM share_users WHERE share_id = $1 AND user_id = $2)`
	err := q.db.QueryRow(ctx, query, shareID, userID).Scan(&isRecipient)
	return isRecipient, err
}
