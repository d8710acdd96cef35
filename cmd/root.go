/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/smartmail-be/config"
	"github.com/tieubaoca/smartmail-be/database"
	"github.com/tieubaoca/smartmail-be/service"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smartmail-be",
	Short: "Email task extraction and document question answering backend",
	Long: `smartmail-be ingests PDF documents into a vector index, answers
questions over the ingested corpus and extracts to-do items from incoming
mail. Run "start" for the HTTP server or use the subcommands directly.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config/config.yaml", "config file")
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfig(cfgFile)
}

func newVectorStore(cfg *config.Config) (*database.WeaviateStore, error) {
	return database.NewWeaviateStore(cfg.WeaviateStore, cfg.VectorIndex, cfg.RequestTimeout)
}

func newAIService(cfg *config.Config) (service.AIService, error) {
	switch cfg.AIProvider {
	case "gemini":
		return service.NewGeminiService(cfg.GeminiAPIKeys, cfg.Model, cfg.RequestTimeout)
	case "openai", "":
		return service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model, cfg.RequestTimeout), nil
	default:
		return nil, errors.New("unknown ai_provider: " + cfg.AIProvider)
	}
}
