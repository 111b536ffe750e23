package assistant

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taiwoajasa245/bible-sage-api/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) Handler {
	return Handler{service: service}
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

func (h *Handler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	reply, err := h.service.Send(req.Content)
	if err != nil {
		if errors.Is(err, ErrEmptyMessage) {
			response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
				"content": "content must not be empty",
			})
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to send message", err.Error())
		return
	}

	response.Success(w, reply, "successfully")
}

func (h *Handler) GetTranscriptHandler(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.service.Transcript(), "successfully")
}
