package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string            `mapstructure:"port"`
	AIProvider     string            `mapstructure:"ai_provider"`
	AIEndpoint     string            `mapstructure:"ai_endpoint"`
	Model          string            `mapstructure:"model"`
	OpenAIAPIKey   string            `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKeys  []string          `mapstructure:"GEMINI_API_KEYS"`
	AttachmentDir  string            `mapstructure:"attachment_dir"`
	RequestTimeout time.Duration     `mapstructure:"request_timeout"`
	WeaviateStore  WeaviateStoreConfig `mapstructure:"weaviate_store_config"`
	VectorIndex    VectorIndexConfig `mapstructure:"vector_index"`
	Mail           MailConfig        `mapstructure:"mail"`
	Chunking       ChunkingConfig    `mapstructure:"chunking"`
}

type WeaviateStoreConfig struct {
	Host         string       `mapstructure:"host"`
	APIKey       string       `mapstructure:"WEAVIATE_APIKEY"` // Changed to match env var
	Text2Vec     string       `mapstructure:"text2vec"`
	ModuleConfig ModuleConfig `mapstructure:"module_config"`
}

type ModuleConfig map[string]interface{}

// VectorIndexConfig names the remote index and the corpus partition within it.
type VectorIndexConfig struct {
	IndexName      string `mapstructure:"index_name"`
	Namespace      string `mapstructure:"namespace"`
	EmbeddingModel string `mapstructure:"embedding_model"`
}

type MailConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"MAIL_PASSWORD"`
}

type ChunkingConfig struct {
	ChunkSize   int `mapstructure:"chunk_size"`
	OverlapSize int `mapstructure:"overlap_size"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("ai_provider", "openai")
	v.SetDefault("attachment_dir", "attachments")
	v.SetDefault("request_timeout", 60*time.Second)
	v.SetDefault("chunking.chunk_size", 500)
	v.SetDefault("chunking.overlap_size", 50)
	v.SetDefault("vector_index.namespace", "document-chunks")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEYS")
	v.BindEnv("weaviate_store_config.WEAVIATE_APIKEY", "WEAVIATE_APIKEY")
	v.BindEnv("mail.MAIL_PASSWORD", "MAIL_PASSWORD")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
