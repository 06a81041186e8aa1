package handlers

import (
	"net/http"

	"github.com/xavierca1/leadflow/internal/entity"
)

type TeamHandler struct{}

func NewTeamHandler() *TeamHandler {
	return &TeamHandler{}
}

// HandleList serves GET /team — the fixed assignee roster for the
// Settings page and the board avatars.
func (h *TeamHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, entity.TeamMembers())
}
