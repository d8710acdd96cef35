/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/smartmail-be/service"
	"github.com/tieubaoca/smartmail-be/types"
)

// processMailCmd represents the processMail command
var processMailCmd = &cobra.Command{
	Use:   "process-mail",
	Short: "Fetch inbox messages and extract to-do items",
	Long: `Fetches unseen messages in the date range, extracts tasks from each
one and saves PDF attachments so they can be ingested afterwards.`,
	Run: func(cmd *cobra.Command, args []string) {
		fromStr, _ := cmd.Flags().GetString("from")
		toStr, _ := cmd.Flags().GetString("to")
		if fromStr == "" {
			log.Fatal("--from is required")
		}
		fromDate, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			log.Fatalf("Invalid --from date: %v", err)
		}
		var toDate time.Time
		if toStr != "" {
			toDate, err = time.Parse("2006-01-02", toStr)
			if err != nil {
				log.Fatalf("Invalid --to date: %v", err)
			}
		}

		cfg, err := loadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		aiService, err := newAIService(cfg)
		if err != nil {
			log.Fatalf("Failed to create AI service: %v", err)
		}

		taskService := service.NewTaskService(aiService)
		mailService := service.NewMailService(cfg.Mail, cfg.AttachmentDir, taskService)

		report := mailService.ProcessMail(context.Background(), types.MailFilter{
			FromDate: fromDate,
			ToDate:   toDate,
		})
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(report)
		if report.Status == types.StatusError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(processMailCmd)
	processMailCmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	processMailCmd.Flags().String("to", "", "end date (YYYY-MM-DD), defaults to a single-day window")
}
