package controllers

import (
	"log/slog"
	"net/http"

	"lumina/app/models"
	"lumina/app/services"
)

// DraftController exposes the draft assistant
type DraftController struct {
	draftService *services.DraftService
	logger       *slog.Logger
}

func NewDraftController(draftService *services.DraftService, logger *slog.Logger) *DraftController {
	return &DraftController{draftService: draftService, logger: logger}
}

// Generate handles a draft request
func (dc *DraftController) Generate(w http.ResponseWriter, r *http.Request) {
	var in models.DraftInput
	if err := decodeJSON(w, r, &in); err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	draft, err := dc.draftService.GenerateDraft(r.Context(), in)
	if err != nil {
		writeServiceError(w, dc.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, draft)
}
