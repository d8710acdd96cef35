/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/smartmail-be/service"
	"github.com/tieubaoca/smartmail-be/types"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer a question over the ingested documents",
	Run: func(cmd *cobra.Command, args []string) {
		question, _ := cmd.Flags().GetString("question")
		topK, _ := cmd.Flags().GetInt("top-k")
		if question == "" {
			log.Fatal("--question is required")
		}

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

		answerService := service.NewAnswerService(weaviateDb, aiService, cfg.VectorIndex.Namespace)
		result := answerService.Answer(context.Background(), question, topK)
		switch result.Status {
		case types.StatusSuccess:
			fmt.Println(result.Answer)
		case types.StatusNoResults:
			fmt.Println("No relevant documents found.")
		default:
			fmt.Fprintln(os.Stderr, "Error:", result.ErrorMessage)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringP("question", "q", "", "question to answer")
	askCmd.Flags().IntP("top-k", "k", service.DefaultTopK, "number of chunks to retrieve")
}
