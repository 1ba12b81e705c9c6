package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"serwer-notatek/internal/models"
	"serwer-notatek/internal/share"

	"github.com/go-chi/chi/v5"
)

type CreateShareRequest struct {
	FolderID string `json:"folder_id,omitempty" example:"Fk2ml0QZW7irnXssBZAkjd"`
	NoteID   string `json:"note_id,omitempty" example:"uJ97zVx02m4nLqWbR3yTfe"`
}

// ShareResponse is the public representation of a share. Internal fields
// (the resolved item id, the owner id) are stripped.
type ShareResponse struct {
	ID        string           `json:"id" example:"_vx2a-43VqRT5wz_s9u4X"`
	Type      models.ShareType `json:"type" example:"folder"`
	FolderID  *string          `json:"folder_id,omitempty"`
	NoteID    *string          `json:"note_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

type ShareListResponse struct {
	Items   []ShareResponse `json:"items"`
	HasMore bool            `json:"has_more"`
}

func toShareResponse(s *models.Share) ShareResponse {
	return ShareResponse{
		ID:        s.ID,
		Type:      s.Type,
		FolderID:  s.FolderID,
		NoteID:    s.NoteID,
		CreatedAt: s.CreatedAt,
	}
}

func respondShareError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, share.ErrNoItemRef) || errors.Is(err, share.ErrAmbiguousItemRef):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, share.ErrItemNotFound) ||
		errors.Is(err, share.ErrShareNotFound) ||
		errors.Is(err, share.ErrInvitationNotFound) ||
		errors.Is(err, share.ErrRecipientNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, share.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, share.ErrAlreadyShared):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("ERROR: Share operation failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// @Summary      Create a share
// @Description  Shares a folder (recursively) or a single note. Exactly one of folder_id and note_id must be given. Creating a folder share twice returns the existing share.
// @Tags         shares
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        createShareRequest  body      CreateShareRequest  true  "Share target"
// @Success      200  {object}  ShareResponse "Existing folder share"
// @Success      201  {object}  ShareResponse
// @Failure      400  {string}  string "Bad Request"
// @Failure      401  {string}  string "Unauthorized"
// @Failure      403  {string}  string "Forbidden"
// @Failure      404  {string}  string "Not Found - folder or note not found"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /shares [post]
func (s *Server) CreateShareHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	var req CreateShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := s.shares.CreateShare(r.Context(), claims.UserID, share.CreateShareInput{
		FolderID: req.FolderID,
		NoteID:   req.NoteID,
	})
	if err != nil {
		respondShareError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toShareResponse(created))
}

// @Summary      List own shares
// @Description  Lists the shares created by the authenticated owner, with a marker telling whether more pages exist.
// @Tags         shares
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Number of shares to return" default(100)
// @Param        offset  query     int  false  "Offset for pagination" default(0)
// @Success      200  {object}  ShareListResponse
// @Failure      401  {string}  string "Unauthorized"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /shares [get]
func (s *Server) ListSharesHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	limit, offset := parsePagination(r)

	shares, hasMore, err := s.shares.ListByOwner(r.Context(), claims.UserID, limit, offset)
	if err != nil {
		http.Error(w, "Failed to retrieve shares", http.StatusInternalServerError)
		return
	}

	items := make([]ShareResponse, 0, len(shares))
	for i := range shares {
		items = append(items, toShareResponse(&shares[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ShareListResponse{Items: items, HasMore: hasMore})
}

// @Summary      Read a public link share
// @Description  Returns the public representation of a note link share. No authentication. Shares of any other type read as not found.
// @Tags         shares
// @Produce      json
// @Param        shareId  path      string  true  "Share ID"
// @Success      200  {object}  ShareResponse
// @Failure      404  {string}  string "Not Found"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /shares/{shareId} [get]
func (s *Server) GetPublicShareHandler(w http.ResponseWriter, r *http.Request) {
	shareID := chi.URLParam(r, "shareId")

	resolved, err := s.shares.ResolvePublicShare(r.Context(), shareID)
	if err != nil {
		respondShareError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toShareResponse(resolved))
}
