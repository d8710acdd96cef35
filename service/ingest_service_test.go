package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/smartmail-be/types"
)

type fakeLoader struct {
	files map[string]string // filename -> text
	fail  map[string]error  // filename -> extraction error
}

func (l *fakeLoader) ListDocuments(folder string) ([]string, error) {
	if l.files == nil {
		return nil, fmt.Errorf("list %s: %w", folder, types.ErrFolderNotFound)
	}
	names := make([]string, 0, len(l.files))
	for name := range l.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (l *fakeLoader) ExtractText(path string) (string, error) {
	name := filepath.Base(path)
	if err, ok := l.fail[name]; ok {
		return "", err
	}
	return l.files[name], nil
}

type fakeVectorIndex struct {
	ensureErr error
	upsertErr map[string]error // parent document -> error
	upserts   [][]types.Chunk
	hits      []types.SearchHit
	searchErr error
}

func (f *fakeVectorIndex) EnsureIndex(ctx context.Context) error {
	return f.ensureErr
}

func (f *fakeVectorIndex) Upsert(ctx context.Context, namespace string, records []types.Chunk) error {
	if len(records) > 0 {
		if err, ok := f.upsertErr[records[0].ParentDocumentID]; ok {
			return err
		}
	}
	f.upserts = append(f.upserts, records)
	return nil
}

func (f *fakeVectorIndex) Search(ctx context.Context, namespace, query string, topK int) ([]types.SearchHit, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if topK < len(f.hits) {
		return f.hits[:topK], nil
	}
	return f.hits, nil
}

func newTestIngestService(t *testing.T, loader *fakeLoader, db *fakeVectorIndex) (*IngestService, string) {
	t.Helper()
	folder := t.TempDir()
	svc := NewIngestService(loader, db, "test-namespace", types.DocumentServiceConfig{
		ChunkSize:   500,
		OverlapSize: 50,
	})
	return svc, folder
}

func TestIngestReportsNewFiles(t *testing.T) {
	loader := &fakeLoader{files: map[string]string{
		"alpha.pdf": "Alpha content for the first document.",
		"beta.pdf":  "Beta content for the second document.",
	}}
	db := &fakeVectorIndex{}
	svc, folder := newTestIngestService(t, loader, db)

	report := svc.Ingest(context.Background(), folder, "invoices")

	assert.Equal(t, types.StatusSuccess, report.Status)
	assert.Equal(t, []string{"alpha.pdf", "beta.pdf"}, report.IngestedFiles)
	assert.Equal(t, 2, report.TotalChunks)
	assert.Empty(t, report.Errors)
}

func TestIngestSecondRunIsNoOp(t *testing.T) {
	loader := &fakeLoader{files: map[string]string{
		"alpha.pdf": "Alpha content.",
	}}
	db := &fakeVectorIndex{}
	svc, folder := newTestIngestService(t, loader, db)

	first := svc.Ingest(context.Background(), folder, "")
	require.Equal(t, types.StatusSuccess, first.Status)
	require.Len(t, first.IngestedFiles, 1)

	second := svc.Ingest(context.Background(), folder, "")
	assert.Equal(t, types.StatusSuccess, second.Status)
	assert.Empty(t, second.IngestedFiles)
	assert.Zero(t, second.TotalChunks)
	assert.Len(t, db.upserts, 1, "no new upserts on the second run")
}

func TestIngestPartialFailureIsolation(t *testing.T) {
	loader := &fakeLoader{
		files: map[string]string{
			"one.pdf":   "First document.",
			"two.pdf":   "Second document.",
			"three.pdf": "Third document.",
		},
		fail: map[string]error{
			"two.pdf": errors.New("text extraction failed"),
		},
	}
	db := &fakeVectorIndex{}
	svc, folder := newTestIngestService(t, loader, db)

	report := svc.Ingest(context.Background(), folder, "")

	assert.Equal(t, types.StatusSuccess, report.Status)
	assert.Equal(t, []string{"one.pdf", "three.pdf"}, report.IngestedFiles)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "two.pdf", report.Errors[0].Filename)

	// The failed file must stay eligible for the next run.
	loader.fail = nil
	retry := svc.Ingest(context.Background(), folder, "")
	assert.Equal(t, []string{"two.pdf"}, retry.IngestedFiles)
}

func TestIngestUpsertFailureKeepsFileOutOfLedger(t *testing.T) {
	loader := &fakeLoader{files: map[string]string{
		"alpha.pdf": "Alpha content.",
	}}
	db := &fakeVectorIndex{upsertErr: map[string]error{
		"alpha.pdf": &types.UpsertError{Applied: 0, Err: errors.New("batch rejected")},
	}}
	svc, folder := newTestIngestService(t, loader, db)

	report := svc.Ingest(context.Background(), folder, "")
	require.Len(t, report.Errors, 1)
	assert.Empty(t, report.IngestedFiles)

	db.upsertErr = nil
	retry := svc.Ingest(context.Background(), folder, "")
	assert.Equal(t, []string{"alpha.pdf"}, retry.IngestedFiles)
}

func TestIngestEmptyTextIsSkippedPermanently(t *testing.T) {
	loader := &fakeLoader{files: map[string]string{
		"blank.pdf": "   \n  ",
		"real.pdf":  "Real content.",
	}}
	db := &fakeVectorIndex{}
	svc, folder := newTestIngestService(t, loader, db)

	report := svc.Ingest(context.Background(), folder, "")
	assert.Equal(t, []string{"real.pdf"}, report.IngestedFiles)
	assert.Equal(t, 1, report.TotalChunks)
	assert.Empty(t, report.Errors)

	// The empty file went into the ledger and is not retried.
	second := svc.Ingest(context.Background(), folder, "")
	assert.Empty(t, second.IngestedFiles)
}

func TestIngestFolderNotFound(t *testing.T) {
	loader := &fakeLoader{files: nil}
	db := &fakeVectorIndex{}
	svc, _ := newTestIngestService(t, loader, db)

	report := svc.Ingest(context.Background(), "/nonexistent", "")
	assert.Equal(t, types.StatusError, report.Status)
	assert.NotEmpty(t, report.ErrorMessage)
}

func TestIngestIndexProvisionFailure(t *testing.T) {
	loader := &fakeLoader{files: map[string]string{"alpha.pdf": "Alpha."}}
	db := &fakeVectorIndex{ensureErr: &types.IndexProvisionError{Index: "Docs", Err: errors.New("connection refused")}}
	svc, folder := newTestIngestService(t, loader, db)

	report := svc.Ingest(context.Background(), folder, "")
	assert.Equal(t, types.StatusError, report.Status)
	assert.Contains(t, report.ErrorMessage, "Docs")
	assert.Empty(t, db.upserts)
}

func TestIngestDeterministicChunkIDs(t *testing.T) {
	loader := &fakeLoader{files: map[string]string{
		"report 2024.pdf": "Quarterly report content.",
	}}
	db := &fakeVectorIndex{}
	svc, folder := newTestIngestService(t, loader, db)

	report := svc.Ingest(context.Background(), folder, "reports")
	require.Equal(t, types.StatusSuccess, report.Status)
	require.Len(t, db.upserts, 1)
	require.Len(t, db.upserts[0], 1)

	chunk := db.upserts[0][0]
	assert.Equal(t, "report 2024-chunk-0", chunk.ID)
	assert.Equal(t, "report 2024.pdf", chunk.ParentDocumentID)
	assert.Equal(t, "reports", chunk.Category)
}

func TestIngestWritesLedgerFile(t *testing.T) {
	loader := &fakeLoader{files: map[string]string{"alpha.pdf": "Alpha."}}
	db := &fakeVectorIndex{}
	svc, folder := newTestIngestService(t, loader, db)

	report := svc.Ingest(context.Background(), folder, "")
	require.Equal(t, types.StatusSuccess, report.Status)

	data, err := os.ReadFile(filepath.Join(folder, LedgerFileName))
	require.NoError(t, err)
	assert.JSONEq(t, `["alpha.pdf"]`, string(data))
}
