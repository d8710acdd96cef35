/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/smartmail-be/service"
	"github.com/tieubaoca/smartmail-be/types"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a folder of PDF documents into the vector index",
	Long: `Walks the folder, skips documents already recorded in its ledger,
chunks the rest and upserts the chunks into the vector index.`,
	Run: func(cmd *cobra.Command, args []string) {
		folder, _ := cmd.Flags().GetString("folder")
		category, _ := cmd.Flags().GetString("category")
		if folder == "" {
			log.Fatal("--folder is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		weaviateDb, err := newVectorStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}

		pdfService := service.NewPDFService()
		ingestService := service.NewIngestService(pdfService, weaviateDb, cfg.VectorIndex.Namespace, types.DocumentServiceConfig{
			ChunkSize:   cfg.Chunking.ChunkSize,
			OverlapSize: cfg.Chunking.OverlapSize,
		})

		report := ingestService.Ingest(context.Background(), folder, category)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(report)
		if report.Status == types.StatusError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringP("folder", "f", "", "folder containing PDF documents")
	ingestCmd.Flags().StringP("category", "t", "", "category label attached to every chunk")
}
