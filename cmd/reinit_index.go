/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

// reinitIndexCmd represents the reinitIndex command
var reinitIndexCmd = &cobra.Command{
	Use:   "reinit-index",
	Short: "Drop and recreate the vector index class",
	Long: `Drops the chunk class and recreates it empty. Ingest folder ledgers
point at the old contents afterwards; delete them to re-ingest.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		weaviateDb, err := newVectorStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}
		if err := weaviateDb.ReInit(context.Background()); err != nil {
			log.Fatalf("Failed to reinitialize index: %v", err)
		}
		log.Println("Index recreated")
	},
}

func init() {
	rootCmd.AddCommand(reinitIndexCmd)
}
