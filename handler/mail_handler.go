package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tieubaoca/smartmail-be/service"
	"github.com/tieubaoca/smartmail-be/types"
)

const dateLayout = "2006-01-02"

type MailHandler struct {
	mailService *service.MailService
}

func NewMailHandler(mailService *service.MailService) *MailHandler {
	return &MailHandler{
		mailService: mailService,
	}
}

func (h *MailHandler) HandleProcessMail() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			h.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req types.ProcessMailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.sendError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.FromDate == "" {
			h.sendError(w, "from_date is required", http.StatusBadRequest)
			return
		}

		fromDate, err := time.Parse(dateLayout, req.FromDate)
		if err != nil {
			h.sendError(w, "from_date must use the YYYY-MM-DD format", http.StatusBadRequest)
			return
		}
		var toDate time.Time
		if req.ToDate != "" {
			toDate, err = time.Parse(dateLayout, req.ToDate)
			if err != nil {
				h.sendError(w, "to_date must use the YYYY-MM-DD format", http.StatusBadRequest)
				return
			}
		}

		report := h.mailService.ProcessMail(r.Context(), types.MailFilter{
			FromDate: fromDate,
			ToDate:   toDate,
		})
		if report.Status == types.StatusError {
			w.WriteHeader(http.StatusInternalServerError)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		json.NewEncoder(w).Encode(types.DataResponse{
			Status:  report.Status,
			Message: report.ErrorMessage,
			Data:    report,
		})
	})
}

func (h *MailHandler) sendError(w http.ResponseWriter, message string, status int) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "error",
		"error":  message,
	})
}
