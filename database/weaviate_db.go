package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/tieubaoca/smartmail-be/config"
	"github.com/tieubaoca/smartmail-be/types"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const BATCH_SIZE = 200

// maxSearchDistance bounds nearText matches; hits further away than this are
// treated as irrelevant so empty-corpus queries return no results.
const maxSearchDistance = 0.7

// chunkIDNamespace seeds the deterministic object UUIDs derived from chunk
// IDs, so re-upserting the same chunk overwrites the same object.
var chunkIDNamespace = uuid.MustParse("8f3c1a52-9f0e-4f43-9a5e-2f4f8f2a7b1d")

type WeaviateStore struct {
	client    *weaviate.Client
	className string
	text2Vec  string
	module    config.ModuleConfig
	timeout   time.Duration
}

func NewWeaviateStore(storeCfg config.WeaviateStoreConfig, indexCfg config.VectorIndexConfig, timeout time.Duration) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(storeCfg.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(storeCfg.Host, scheme+"://")
	cfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if storeCfg.APIKey != "" {
		cfg.AuthConfig = auth.ApiKey{
			Value: storeCfg.APIKey,
		}
		cfg.Headers = map[string]string{
			"X-Weaviate-Api-Key":     storeCfg.APIKey,
			"X-Weaviate-Cluster-Url": fmt.Sprintf("%s://%s", scheme, host),
		}
	}
	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &WeaviateStore{
		client:    client,
		className: ClassNameForIndex(indexCfg.IndexName),
		text2Vec:  storeCfg.Text2Vec,
		module:    storeCfg.ModuleConfig,
		timeout:   timeout,
	}, nil
}

// ClassNameForIndex maps an index name like "hybrid-search-demo" onto a valid
// Weaviate class name (leading capital, word characters only).
func ClassNameForIndex(index string) string {
	name := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, index)
	if name == "" {
		name = "Document"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func (s *WeaviateStore) classObject() *models.Class {
	return &models.Class{
		Class: s.className,
		Properties: []*models.Property{
			{Name: "chunk_text", DataType: []string{"text"}},
			{Name: "category", DataType: []string{"text"}},
			{Name: "chunk_id", DataType: []string{"text"}},
			{Name: "parent_document", DataType: []string{"text"}},
			{Name: "namespace", DataType: []string{"text"}},
		},
		Vectorizer:      s.text2Vec,
		ModuleConfig:    s.module,
		VectorIndexType: "hnsw",
	}
}

// EnsureIndex creates the chunk class only when it is absent.
func (s *WeaviateStore) EnsureIndex(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	schema, err := s.client.Schema().Getter().Do(ctx)
	if err != nil {
		return &types.IndexProvisionError{Index: s.className, Err: err}
	}
	for _, class := range schema.Classes {
		if class.Class == s.className {
			return nil
		}
	}
	err = s.client.Schema().ClassCreator().WithClass(s.classObject()).Do(ctx)
	if err != nil {
		return &types.IndexProvisionError{Index: s.className, Err: err}
	}
	return nil
}

// ReInit drops and recreates the chunk class. Any local ledger pointing at the
// old contents must be reset by the operator as well.
func (s *WeaviateStore) ReInit(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.client.Schema().ClassDeleter().WithClassName(s.className).Do(ctx)
	if err != nil {
		return &types.IndexProvisionError{Index: s.className, Err: err}
	}
	err = s.client.Schema().ClassCreator().WithClass(s.classObject()).Do(ctx)
	if err != nil {
		return &types.IndexProvisionError{Index: s.className, Err: err}
	}
	return nil
}

// Upsert writes chunk records in batches. Object UUIDs are derived from the
// chunk IDs, so retried upserts overwrite rather than duplicate. The returned
// UpsertError carries how many records were applied before the failure.
func (s *WeaviateStore) Upsert(ctx context.Context, namespace string, records []types.Chunk) error {
	applied := 0
	total := len(records)
	for i := 0; i < total; i += BATCH_SIZE {
		end := i + BATCH_SIZE
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			batcher = batcher.WithObjects(&models.Object{
				ID:    strfmt.UUID(objectID(namespace, records[j].ID)),
				Class: s.className,
				Properties: map[string]interface{}{
					"chunk_text":      records[j].Text,
					"category":        records[j].Category,
					"chunk_id":        records[j].ID,
					"parent_document": records[j].ParentDocumentID,
					"namespace":       namespace,
				},
			})
		}

		batchCtx, cancel := context.WithTimeout(ctx, s.timeout)
		resp, err := batcher.Do(batchCtx)
		cancel()
		if err != nil {
			return &types.UpsertError{Applied: applied, Err: err}
		}
		for _, obj := range resp {
			if obj.Result != nil && obj.Result.Errors != nil && len(obj.Result.Errors.Error) > 0 {
				return &types.UpsertError{
					Applied: applied,
					Err:     fmt.Errorf("batch object rejected: %s", obj.Result.Errors.Error[0].Message),
				}
			}
			applied++
		}
	}
	return nil
}

// Search runs a nearText query scoped to the namespace and returns ranked
// hits, highest relevance first.
func (s *WeaviateStore) Search(ctx context.Context, namespace string, query string, topK int) ([]types.SearchHit, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	fields := []graphql.Field{
		{Name: "chunk_text"},
		{Name: "category"},
		{Name: "chunk_id"},
		{Name: "parent_document"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}, {Name: "id"}}},
	}
	nearText := (&graphql.NearTextArgumentBuilder{}).
		WithConcepts([]string{query}).
		WithDistance(maxSearchDistance)
	where := filters.Where().
		WithPath([]string{"namespace"}).
		WithOperator(filters.Equal).
		WithValueString(namespace)

	result, err := s.client.GraphQL().Get().
		WithClassName(s.className).
		WithFields(fields...).
		WithNearText(nearText).
		WithWhere(where).
		WithLimit(topK).
		Do(ctx)
	if err != nil {
		return nil, &types.SearchError{Err: err}
	}
	if result.Errors != nil && len(result.Errors) > 0 {
		return nil, &types.SearchError{Err: fmt.Errorf("%v", result.Errors[0].Message)}
	}

	hits := []types.SearchHit{}
	getData, ok := result.Data["Get"].(map[string]interface{})
	if !ok {
		return hits, nil
	}
	data, ok := getData[s.className].([]interface{})
	if !ok {
		return hits, nil
	}
	for _, item := range data {
		doc, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		hit := types.SearchHit{
			Text: stringField(doc, "chunk_text"),
			Metadata: map[string]string{
				"category":        stringField(doc, "category"),
				"chunk_id":        stringField(doc, "chunk_id"),
				"parent_document": stringField(doc, "parent_document"),
			},
		}
		if additional, ok := doc["_additional"].(map[string]interface{}); ok {
			if distance, ok := additional["distance"].(float64); ok {
				hit.Score = 1 - distance
			}
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// objectID derives a stable UUID from the namespace and chunk ID.
func objectID(namespace, chunkID string) string {
	return uuid.NewSHA1(chunkIDNamespace, []byte(namespace+"/"+chunkID)).String()
}

func stringField(doc map[string]interface{}, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}
