package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/tieubaoca/smartmail-be/utils"
)

// DocumentHandler serves saved mail attachments back to the client.
type DocumentHandler struct {
	attachmentDir string
}

func NewPDFHandler(attachmentDir string) *DocumentHandler {
	return &DocumentHandler{
		attachmentDir: attachmentDir,
	}
}

func (h *DocumentHandler) ServeDocument() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		requestedName := r.URL.Query().Get("file")
		if requestedName == "" {
			http.Error(w, "File parameter is required", http.StatusBadRequest)
			return
		}
		if filepath.Ext(requestedName) != ".pdf" {
			http.Error(w, "Only PDF files are allowed", http.StatusBadRequest)
			return
		}

		// Saved names are sanitized, so the sanitized form of the request must
		// match a file exactly. This also blocks path traversal.
		filePath := filepath.Join(h.attachmentDir, utils.SanitizeFilename(requestedName))
		if _, err := os.Stat(filePath); err != nil {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%s", filepath.Base(filePath)))
		http.ServeFile(w, r, filePath)
	})
}
