package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
port: "9090"
ai_provider: gemini
model: gemini-2.0-flash
attachment_dir: /tmp/attachments
request_timeout: 30s
weaviate_store_config:
  host: http://localhost:8081
  text2vec: text2vec-openai
vector_index:
  index_name: hybrid-search-demo
  namespace: email-chunks
mail:
  host: imap.example.com
  user: user@example.com
chunking:
  chunk_size: 800
  overlap_size: 100
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "gemini", cfg.AIProvider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, "/tmp/attachments", cfg.AttachmentDir)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "http://localhost:8081", cfg.WeaviateStore.Host)
	assert.Equal(t, "text2vec-openai", cfg.WeaviateStore.Text2Vec)
	assert.Equal(t, "hybrid-search-demo", cfg.VectorIndex.IndexName)
	assert.Equal(t, "email-chunks", cfg.VectorIndex.Namespace)
	assert.Equal(t, "imap.example.com", cfg.Mail.Host)
	assert.Equal(t, "user@example.com", cfg.Mail.User)
	assert.Equal(t, 800, cfg.Chunking.ChunkSize)
	assert.Equal(t, 100, cfg.Chunking.OverlapSize)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, `
weaviate_store_config:
  host: http://localhost:8081
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "openai", cfg.AIProvider)
	assert.Equal(t, "attachments", cfg.AttachmentDir)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 500, cfg.Chunking.ChunkSize)
	assert.Equal(t, 50, cfg.Chunking.OverlapSize)
	assert.Equal(t, "document-chunks", cfg.VectorIndex.Namespace)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MAIL_PASSWORD", "secret")

	path := writeConfigFile(t, `
mail:
  host: imap.example.com
  user: user@example.com
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "secret", cfg.Mail.Password)
}
