package database

import (
	"context"
	"fmt"
	"testing"

	"serwer-notatek/internal/models"

	"github.com/stretchr/testify/require"
)

// Kazdy test tworzy uzytkownika o unikalnym emailu, zeby testy nie
// wchodzily sobie w droge
func createTestUser(t *testing.T, name string) int64 {
	var userID int64
	query := `INSERT INTO users (email, password_hash) VALUES ($1, 'hash') RETURNING id`
	err := testStore.pool.QueryRow(context.Background(), query, fmt.Sprintf("%s@example.com", name)).Scan(&userID)
	require.NoError(t, err)
	require.NotZero(t, userID)
	return userID
}

func createTestItem(t *testing.T, params CreateItemParams) *models.Item {
	item, err := testStore.CreateItem(context.Background(), params)
	require.NoError(t, err)
	require.NotNil(t, item)
	return item
}

func TestCreateItem(t *testing.T) {
	ownerID := createTestUser(t, "item_create_owner")

	params := CreateItemParams{
		ExternalID: "folder_ext_123",
		OwnerID:    ownerID,
		ItemType:   models.ItemTypeFolder,
		Title:      "Projekty",
	}

	item := createTestItem(t, params)
	require.NotZero(t, item.ID)
	require.Equal(t, "folder_ext_123", item.ExternalID)
	require.Equal(t, ownerID, item.OwnerID)
	require.Equal(t, models.ItemTypeFolder, item.ItemType)

	_, err := testStore.CreateItem(context.Background(), params)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrDuplicateItem)
}

func TestGetItemByExternalID(t *testing.T) {
	ownerID := createTestUser(t, "item_get_owner")
	otherID := createTestUser(t, "item_get_other")

	created := createTestItem(t, CreateItemParams{
		ExternalID: "note_ext_456",
		OwnerID:    ownerID,
		ItemType:   models.ItemTypeNote,
		Title:      "Notatka",
	})

	found, err := testStore.GetItemByExternalID(context.Background(), ownerID, "note_ext_456")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, created.ID, found.ID)

	// Cudzy item czyta sie tak samo jak nieistniejacy
	found, err = testStore.GetItemByExternalID(context.Background(), otherID, "note_ext_456")
	require.NoError(t, err)
	require.Nil(t, found)

	found, err = testStore.GetItemByExternalID(context.Background(), ownerID, "no_such_item")
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestListItems(t *testing.T) {
	ownerID := createTestUser(t, "item_list_owner")

	createTestItem(t, CreateItemParams{ExternalID: "li_1", OwnerID: ownerID, ItemType: models.ItemTypeNote, Title: "B nota"})
	createTestItem(t, CreateItemParams{ExternalID: "li_2", OwnerID: ownerID, ItemType: models.ItemTypeFolder, Title: "A folder"})

	items, err := testStore.ListItems(context.Background(), ownerID, 100, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "B nota", items[0].Title)
	require.Equal(t, "A folder", items[1].Title)
}
