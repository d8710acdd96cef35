package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tieubaoca/smartmail-be/service"
	"github.com/tieubaoca/smartmail-be/types"
)

type AskHandler struct {
	answerService *service.AnswerService
}

func NewAskHandler(answerService *service.AnswerService) *AskHandler {
	return &AskHandler{
		answerService: answerService,
	}
}

func (h *AskHandler) HandleAsk() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			h.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req types.AskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.sendError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Question == "" {
			h.sendError(w, "Question is required", http.StatusBadRequest)
			return
		}
		if req.TopK == 0 {
			req.TopK = service.DefaultTopK
		}

		result := h.answerService.Answer(r.Context(), req.Question, req.TopK)
		if result.Status == types.StatusError {
			w.WriteHeader(http.StatusInternalServerError)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		json.NewEncoder(w).Encode(types.DataResponse{
			Status:  result.Status,
			Message: result.ErrorMessage,
			Data:    result,
		})
	})
}

func (h *AskHandler) sendError(w http.ResponseWriter, message string, status int) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "error",
		"error":  message,
	})
}
