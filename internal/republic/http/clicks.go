package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/republichq/republic/internal/republic/service"
	"github.com/republichq/republic/pkg/httpx"
	"github.com/republichq/republic/pkg/republicsdk"
)

const maxTrackClickBody = 4 << 10

type TrackClickHandler struct {
	ClickService *service.ClickService
}

// ServeHTTP godoc
//
//	@Summary		Record a click event
//	@Description	Increments the named counter, creating it on first use.
//	@Tags			Clicks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		republicsdk.TrackClickRequest	true	"event_name"
//	@Success		200		{object}	republicsdk.TrackClickResponse	"success, message"
//	@Failure		400		{object}	republicsdk.TrackClickResponse	"not JSON or event_name missing"
//	@Failure		500		{object}	republicsdk.TrackClickResponse	"storage failure"
//	@Router			/track_click [post].
func (h *TrackClickHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !isJSON(r) {
		badClick(w)
		return
	}

	var req republicsdk.TrackClickRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTrackClickBody)).Decode(&req); err != nil {
		badClick(w)
		return
	}

	err := h.ClickService.Increment(r.Context(), req.EventName)
	switch {
	case errors.Is(err, service.ErrInvalidEvent):
		badClick(w)
		return
	case err != nil:
		httpx.WriteJSON(w, http.StatusInternalServerError, republicsdk.TrackClickResponse{
			Success: false,
			Message: "Erro ao rastrear clique",
			Error:   republicsdk.CodeServerError,
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, republicsdk.TrackClickResponse{
		Success: true,
		Message: fmt.Sprintf("Clique para '%s' rastreado com sucesso", strings.TrimSpace(req.EventName)),
	})
}

func badClick(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, republicsdk.TrackClickResponse{
		Success: false,
		Message: "Requisição inválida",
		Error:   republicsdk.CodeInvalidRequest,
	})
}

// isJSON accepts application/json and any +json media type.
func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
