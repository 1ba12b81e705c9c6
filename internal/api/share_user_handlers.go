package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type InviteUserRequest struct {
	Email string `json:"email" example:"a@x.com"`
}

// @Summary      Invite a user to a share
// @Description  Invites a recipient by email. The recipient account is created if the email is unknown. Inviting the same email twice fails.
// @Tags         shares
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        shareId            path      string             true  "Share ID"
// @Param        inviteUserRequest  body      InviteUserRequest  true  "Recipient"
// @Success      201  {object}  models.ShareUser
// @Failure      400  {string}  string "Bad Request"
// @Failure      401  {string}  string "Unauthorized"
// @Failure      403  {string}  string "Forbidden - only the share owner may invite"
// @Failure      404  {string}  string "Not Found - share or recipient not found"
// @Failure      409  {string}  string "Conflict - already shared with this user"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /shares/{shareId}/users [post]
func (s *Server) InviteUserHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	shareID := chi.URLParam(r, "shareId")

	var req InviteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	shareUser, err := s.shares.Invite(r.Context(), claims.UserID, shareID, req.Email)
	if err != nil {
		respondShareError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(shareUser)
}

// @Summary      List share recipients
// @Description  Lists the invitations on a share: acceptance flag and recipient email only.
// @Tags         shares
// @Produce      json
// @Security     BearerAuth
// @Param        shareId  path      string  true  "Share ID"
// @Success      200  {array}   share.Recipient
// @Failure      401  {string}  string "Unauthorized"
// @Failure      403  {string}  string "Forbidden"
// @Failure      404  {string}  string "Not Found"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /shares/{shareId}/users [get]
func (s *Server) ListRecipientsHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	shareID := chi.URLParam(r, "shareId")

	recipients, err := s.shares.ListRecipients(r.Context(), claims.UserID, shareID)
	if err != nil {
		respondShareError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recipients)
}

type UpdateShareUserRequest struct {
	IsAccepted bool `json:"is_accepted" example:"true"`
}

// @Summary      Accept or reject an invitation
// @Description  Lets the invited user set the acceptance flag of their own invitation.
// @Tags         shares
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        shareUserId             path      int                     true  "Invitation ID"
// @Param        updateShareUserRequest  body      UpdateShareUserRequest  true  "New acceptance state"
// @Success      200  {object}  models.ShareUser
// @Failure      400  {string}  string "Bad Request"
// @Failure      401  {string}  string "Unauthorized"
// @Failure      403  {string}  string "Forbidden - not the invited user"
// @Failure      404  {string}  string "Not Found"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /share_users/{shareUserId} [patch]
func (s *Server) UpdateShareUserHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	shareUserIDStr := chi.URLParam(r, "shareUserId")
	shareUserID, err := strconv.ParseInt(shareUserIDStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid invitation ID format", http.StatusBadRequest)
		return
	}

	var req UpdateShareUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	shareUser, err := s.shares.SetInvitationStatus(r.Context(), claims.UserID, shareUserID, req.IsAccepted)
	if err != nil {
		respondShareError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(shareUser)
}

// @Summary      List my invitations
// @Description  Lists the share invitations addressed to the authenticated user.
// @Tags         shares
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Number of invitations to return" default(100)
// @Param        offset  query     int  false  "Offset for pagination" default(0)
// @Success      200  {array}   database.Invitation
// @Failure      401  {string}  string "Unauthorized"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /share_users [get]
func (s *Server) ListMyInvitationsHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	limit, offset := parsePagination(r)

	invitations, err := s.shares.ListInvitations(r.Context(), claims.UserID, limit, offset)
	if err != nil {
		http.Error(w, "Failed to retrieve invitations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invitations)
}
