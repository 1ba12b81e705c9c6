package database

import (
	"context"
	"testing"

	"serwer-notatek/internal/models"

	"github.com/stretchr/testify/require"
)

func createTestFolderShare(t *testing.T, id string, ownerID int64, itemID int64, folderID string) *models.Share {
	share, err := testStore.CreateShare(context.Background(), CreateShareParams{
		ID:               id,
		Type:             models.ShareTypeFolder,
		ItemID:           itemID,
		OwnerID:          ownerID,
		FolderExternalID: &folderID,
	})
	require.NoError(t, err)
	require.NotNil(t, share)
	return share
}

func TestCreateShareUniquePerFolder(t *testing.T) {
	ownerID := createTestUser(t, "share_unique_owner")
	item := createTestItem(t, CreateItemParams{ExternalID: "su_folder", OwnerID: ownerID, ItemType: models.ItemTypeFolder, Title: "F"})

	share := createTestFolderShare(t, "share_unique_id_0000A", ownerID, item.ID, "su_folder")
	require.Equal(t, models.ShareTypeFolder, share.Type)
	require.Equal(t, item.ID, share.ItemID)
	require.Equal(t, "su_folder", *share.FolderID)
	require.NotZero(t, share.CreatedAt)

	// Drugi share typu folder dla tej samej pary (owner, item) odbija sie
	// od indeksu czesciowego
	folderID := "su_folder"
	_, err := testStore.CreateShare(context.Background(), CreateShareParams{
		ID:               "share_unique_id_0000B",
		Type:             models.ShareTypeFolder,
		ItemID:           item.ID,
		OwnerID:          ownerID,
		FolderExternalID: &folderID,
	})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrShareExists)

	found, err := testStore.GetFolderShare(context.Background(), ownerID, item.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, share.ID, found.ID)
}

func TestCreateLinkSharesNotUnique(t *testing.T) {
	ownerID := createTestUser(t, "share_link_owner")
	item := createTestItem(t, CreateItemParams{ExternalID: "sl_note", OwnerID: ownerID, ItemType: models.ItemTypeNote, Title: "N"})

	noteID := "sl_note"
	for _, id := range []string{"share_link_id_000001", "share_link_id_000002"} {
		_, err := testStore.CreateShare(context.Background(), CreateShareParams{
			ID:             id,
			Type:           models.ShareTypeLink,
			ItemID:         item.ID,
			OwnerID:        ownerID,
			NoteExternalID: &noteID,
		})
		require.NoError(t, err)
	}
}

func TestGetShareByID(t *testing.T) {
	ownerID := createTestUser(t, "share_get_owner")
	item := createTestItem(t, CreateItemParams{ExternalID: "sg_folder", OwnerID: ownerID, ItemType: models.ItemTypeFolder, Title: "F"})
	share := createTestFolderShare(t, "share_get_id_0000001", ownerID, item.ID, "sg_folder")

	found, err := testStore.GetShareByID(context.Background(), share.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, share.ID, found.ID)
	require.Equal(t, ownerID, found.OwnerID)

	notFound, err := testStore.GetShareByID(context.Background(), "no_such_share_id_xxx")
	require.NoError(t, err)
	require.Nil(t, notFound)
}

func TestListSharesByOwner(t *testing.T) {
	ownerID := createTestUser(t, "share_list_owner")
	otherID := createTestUser(t, "share_list_other")
	folder := createTestItem(t, CreateItemParams{ExternalID: "slo_folder", OwnerID: ownerID, ItemType: models.ItemTypeFolder, Title: "F"})
	note := createTestItem(t, CreateItemParams{ExternalID: "slo_note", OwnerID: ownerID, ItemType: models.ItemTypeNote, Title: "N"})

	createTestFolderShare(t, "share_list_id_000001", ownerID, folder.ID, "slo_folder")
	noteID := "slo_note"
	_, err := testStore.CreateShare(context.Background(), CreateShareParams{
		ID:             "share_list_id_000002",
		Type:           models.ShareTypeLink,
		ItemID:         note.ID,
		OwnerID:        ownerID,
		NoteExternalID: &noteID,
	})
	require.NoError(t, err)

	shares, err := testStore.ListSharesByOwner(context.Background(), ownerID, 100, 0)
	require.NoError(t, err)
	require.Len(t, shares, 2)

	shares, err = testStore.ListSharesByOwner(context.Background(), otherID, 100, 0)
	require.NoError(t, err)
	require.Len(t, shares, 0)
}

func TestShareUserUniquePerShare(t *testing.T) {
	ownerID := createTestUser(t, "su_owner")
	recipientID := createTestUser(t, "su_recipient")
	item := createTestItem(t, CreateItemParams{ExternalID: "su_item", OwnerID: ownerID, ItemType: models.ItemTypeFolder, Title: "F"})
	share := createTestFolderShare(t, "share_user_id_000001", ownerID, item.ID, "su_item")

	su, err := testStore.CreateShareUser(context.Background(), share.ID, recipientID)
	require.NoError(t, err)
	require.NotZero(t, su.ID)
	require.Equal(t, share.ID, su.ShareID)
	require.Equal(t, recipientID, su.UserID)
	require.False(t, su.IsAccepted)

	_, err = testStore.CreateShareUser(context.Background(), share.ID, recipientID)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvitationExists)
}

func TestGetShareUserByEmail(t *testing.T) {
	ownerID := createTestUser(t, "sue_owner")
	recipientID := createTestUser(t, "sue_recipient")
	item := createTestItem(t, CreateItemParams{ExternalID: "sue_item", OwnerID: ownerID, ItemType: models.ItemTypeFolder, Title: "F"})
	share := createTestFolderShare(t, "share_email_id_00001", ownerID, item.ID, "sue_item")

	_, err := testStore.CreateShareUser(context.Background(), share.ID, recipientID)
	require.NoError(t, err)

	found, err := testStore.GetShareUserByEmail(context.Background(), share.ID, "sue_recipient@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, recipientID, found.UserID)

	notFound, err := testStore.GetShareUserByEmail(context.Background(), share.ID, "nobody@example.com")
	require.NoError(t, err)
	require.Nil(t, notFound)
}

func TestSetShareUserAcceptedAndListInvitations(t *testing.T) {
	ownerID := createTestUser(t, "sua_owner")
	recipientID := createTestUser(t, "sua_recipient")
	item := createTestItem(t, CreateItemParams{ExternalID: "sua_item", OwnerID: ownerID, ItemType: models.ItemTypeFolder, Title: "F"})
	share := createTestFolderShare(t, "share_accept_id_0001", ownerID, item.ID, "sua_item")

	su, err := testStore.CreateShareUser(context.Background(), share.ID, recipientID)
	require.NoError(t, err)

	updated, err := testStore.SetShareUserAccepted(context.Background(), su.ID, true)
	require.NoError(t, err)
	require.True(t, updated)

	invitations, err := testStore.ListInvitationsForUser(context.Background(), recipientID, 100, 0)
	require.NoError(t, err)
	require.Len(t, invitations, 1)
	require.True(t, invitations[0].IsAccepted)
	require.Equal(t, models.ShareTypeFolder, invitations[0].ShareType)
	require.Equal(t, "sua_item", *invitations[0].FolderID)

	updated, err = testStore.SetShareUserAccepted(context.Background(), 999999, true)
	require.NoError(t, err)
	require.False(t, updated)
}

func TestIsShareRecipient(t *testing.T) {
	ownerID := createTestUser(t, "sir_owner")
	recipientID := createTestUser(t, "sir_recipient")
	strangerID := createTestUser(t, "sir_stranger")
	item := createTestItem(t, CreateItemParams{ExternalID: "sir_item", OwnerID: ownerID, ItemType: models.ItemTypeFolder, Title: "F"})
	share := createTestFolderShare(t, "share_recip_id_00001", ownerID, item.ID, "sir_item")

	_, err := testStore.CreateShareUser(context.Background(), share.ID, recipientID)
	require.NoError(t, err)

	is, err := testStore.IsShareRecipient(context.Background(), share.ID, recipientID)
	require.NoError(t, err)
	require.True(t, is)

	is, err = testStore.IsShareRecipient(context.Background(), share.ID, strangerID)
	require.NoError(t, err)
	require.False(t, is)
}
