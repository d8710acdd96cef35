/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/tieubaoca/smartmail-be/handler"
	"github.com/tieubaoca/smartmail-be/service"
	"github.com/tieubaoca/smartmail-be/types"
)

// startServerCmd represents the startServer command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Long:  `Starts the server that handles ingestion, questions and mail processing`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		weaviateDb, err := newVectorStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}
		aiService, err := newAIService(cfg)
		if err != nil {
			log.Fatalf("Failed to create AI service: %v", err)
		}

		// Initialize services
		pdfService := service.NewPDFService()
		ingestService := service.NewIngestService(pdfService, weaviateDb, cfg.VectorIndex.Namespace, types.DocumentServiceConfig{
			ChunkSize:   cfg.Chunking.ChunkSize,
			OverlapSize: cfg.Chunking.OverlapSize,
		})
		answerService := service.NewAnswerService(weaviateDb, aiService, cfg.VectorIndex.Namespace)
		taskService := service.NewTaskService(aiService)
		mailService := service.NewMailService(cfg.Mail, cfg.AttachmentDir, taskService)
		wsService := service.NewWebSocketService(answerService)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		ingestHandler := handler.NewIngestHandler(ingestService)
		askHandler := handler.NewAskHandler(answerService)
		mailHandler := handler.NewMailHandler(mailService)
		pdfHandler := handler.NewPDFHandler(mailService.AttachmentDir())

		// Setup routes
		router := chi.NewRouter()
		router.Use(chimiddleware.Logger)
		router.Use(chimiddleware.Recoverer)
		router.Use(corsHandler.CorsMiddleware)

		router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})
		router.Route("/api/v1", func(r chi.Router) {
			r.Method(http.MethodPost, "/ingest", ingestHandler.HandleIngest())
			r.Method(http.MethodPost, "/ask", askHandler.HandleAsk())
			r.Get("/ask/ws", wsService.HandleAsk)
			r.Method(http.MethodPost, "/mail/process", mailHandler.HandleProcessMail())
			r.Method(http.MethodGet, "/pdf", pdfHandler.ServeDocument())
		})

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
