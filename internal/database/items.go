package database

import (
	"context"
	"errors"
	"time"

	"serwer-notatek/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrDuplicateItem = errors.New("an item with this id already exists for the owner")

type CreateItemParams struct {
	ExternalID       string
	OwnerID          int64
	ItemType         string
	Title            string
	ParentExternalID *string
}

func (q *Queries) CreateItem(ctx context.Context, arg CreateItemParams) (*models.Item, error) {
	query := `
		INSERT INTO items (external_id, owner_id, item_type, title, parent_external_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, external_id, owner_id, item_type, title, parent_external_id, created_at, updated_at
	`
	now := time.Now()

	row := q.db.QueryRow(ctx, query,
		arg.ExternalID,
		arg.OwnerID,
		arg.ItemType,
		arg.Title,
		arg.ParentExternalID,
		now,
	)

	var item models.Item
	err := row.Scan(
		&item.ID,
		&item.ExternalID,
		&item.OwnerID,
		&item.ItemType,
		&item.Title,
		&item.ParentExternalID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateItem
		}
		return nil, err
	}

	return &item, nil
}

// GetItemByExternalID resolves a client-side id within one owner's
// namespace. Items of other owners are invisible here, so a foreign id
// reads the same as a missing one.
func (q *Queries) GetItemByExternalID(ctx context.Context, ownerID int64, externalID string) (*models.Item, error) {
	query := `
		SELECT id, external_id, owner_id, item_type, title, parent_external_id, created_at, updated_at
		FROM items
		WHERE owner_id = $1 AND external_id = $2
	`
	var item models.Item
	err := q.db.QueryRow(ctx, query, ownerID, externalID).Scan(
		&item.ID,
		&item.ExternalID,
		&item.OwnerID,
		&item.ItemType,
		&item.Title,
		&item.ParentExternalID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (q *Queries) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	query := `
		SELECT id, external_id, owner_id, item_type, title, parent_external_id, created_at, updated_at
		FROM items
		WHERE id = $1
	`
	var item models.Item
	err := q.db.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.ExternalID,
		&item.OwnerID,
		&item.ItemType,
		&item.Title,
		&item.ParentExternalID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (q *Queries) ListItems(ctx context.Context, ownerID int64, limit int, offset int) ([]models.Item, error) {
	query := `
		SELECT id, external_id, owner_id, item_type, title, parent_external_id, created_at, updated_at
		FROM items
		WHERE owner_id = $1
		ORDER BY item_type DESC, title LIMIT $2 OFFSET $3
	`
	rows, err := q.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		err := rows.Scan(
			&item.ID,
			&item.ExternalID,
			&item.OwnerID,
			&item.ItemType,
			&item.Title,
			&item.ParentExternalID,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if items == nil {
		return []models.Item{}, nil
	}

	return items, nil
}
