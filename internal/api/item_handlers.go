package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"serwer-notatek/internal/database"
	"serwer-notatek/internal/models"
)

type CreateItemRequest struct {
	ID       string  `json:"id" example:"Fk2ml0QZW7irnXssBZAkjd"`
	Type     string  `json:"type" example:"folder" enums:"folder,note"`
	Title    string  `json:"title" example:"Wspólne notatki"`
	ParentID *string `json:"parent_id,omitempty"`
}

// @Summary      Create an item
// @Description  Registers a client-synced folder or note under the authenticated owner. The client supplies the item id.
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        createItemRequest  body      CreateItemRequest  true  "Item details"
// @Success      201  {object}  models.Item
// @Failure      400  {string}  string "Bad Request"
// @Failure      401  {string}  string "Unauthorized"
// @Failure      409  {string}  string "Conflict - item id already used"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /items [post]
func (s *Server) CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.ID) == "" {
		http.Error(w, "Item id cannot be empty", http.StatusBadRequest)
		return
	}
	if req.Type != models.ItemTypeFolder && req.Type != models.ItemTypeNote {
		http.Error(w, "Invalid item type. Must be 'folder' or 'note'", http.StatusBadRequest)
		return
	}

	item, err := s.store.CreateItem(r.Context(), database.CreateItemParams{
		ExternalID:       req.ID,
		OwnerID:          claims.UserID,
		ItemType:         req.Type,
		Title:            req.Title,
		ParentExternalID: req.ParentID,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicateItem) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

// @Summary      List items
// @Description  Lists the authenticated owner's folders and notes.
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Number of items to return" default(100)
// @Param        offset  query     int  false  "Offset for pagination" default(0)
// @Success      200  {array}   models.Item
// @Failure      401  {string}  string "Unauthorized"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /items [get]
func (s *Server) ListItemsHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	limit, offset := parsePagination(r)

	items, err := s.store.ListItems(r.Context(), claims.UserID, limit, offset)
	if err != nil {
		http.Error(w, "Failed to list items", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}
