package service

import (
	"context"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tieubaoca/smartmail-be/database"
	"github.com/tieubaoca/smartmail-be/repository"
	"github.com/tieubaoca/smartmail-be/types"
	"github.com/tieubaoca/smartmail-be/utils"
)

// LedgerFileName is the dedup ledger kept inside each ingest folder, matching
// the layout the attachment fetcher produces.
const LedgerFileName = ".ingested_files.json"

// DocumentLoader is the document-source collaborator: it enumerates eligible
// documents in a folder and extracts their text.
type DocumentLoader interface {
	ListDocuments(folder string) ([]string, error)
	ExtractText(path string) (string, error)
}

// IngestService walks a folder of documents, filters out everything the dedup
// ledger has already seen, chunks the rest and upserts the chunks into the
// vector index. One bad document never aborts the batch; its error is
// collected and the file stays out of the ledger so the next run retries it.
type IngestService struct {
	loader      DocumentLoader
	vectorDB    database.VectorIndex
	namespace   string
	chunkSize   int
	overlapSize int
}

func NewIngestService(loader DocumentLoader, vectorDB database.VectorIndex, namespace string, chunkCfg types.DocumentServiceConfig) *IngestService {
	chunkSize := chunkCfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	overlap := chunkCfg.OverlapSize
	if overlap < 0 {
		overlap = DefaultOverlapSize
	}
	return &IngestService{
		loader:      loader,
		vectorDB:    vectorDB,
		namespace:   namespace,
		chunkSize:   chunkSize,
		overlapSize: overlap,
	}
}

// Ingest runs one incremental ingestion pass over the folder. Running it twice
// on an unchanged folder performs zero upserts the second time.
func (s *IngestService) Ingest(ctx context.Context, folder, category string) *types.IngestReport {
	if err := s.vectorDB.EnsureIndex(ctx); err != nil {
		return &types.IngestReport{
			Status:        types.StatusError,
			IngestedFiles: []string{},
			ErrorMessage:  err.Error(),
		}
	}

	files, err := s.loader.ListDocuments(folder)
	if err != nil {
		return &types.IngestReport{
			Status:        types.StatusError,
			IngestedFiles: []string{},
			ErrorMessage:  err.Error(),
		}
	}

	ledger := repository.NewLedgerRepo(filepath.Join(folder, LedgerFileName))
	ingested, err := ledger.Load()
	if err != nil {
		return &types.IngestReport{
			Status:        types.StatusError,
			IngestedFiles: []string{},
			ErrorMessage:  err.Error(),
		}
	}

	var candidates []string
	for _, name := range files {
		if _, ok := ingested[name]; ok {
			continue
		}
		candidates = append(candidates, name)
	}
	sort.Strings(candidates)

	report := &types.IngestReport{
		Status:        types.StatusSuccess,
		IngestedFiles: []string{},
	}

	for _, name := range candidates {
		text, err := s.loader.ExtractText(filepath.Join(folder, name))
		if err != nil {
			report.Errors = append(report.Errors, types.IngestError{Filename: name, Message: err.Error()})
			continue
		}
		if strings.TrimSpace(text) == "" {
			// No extractable text. Recorded as processed so the file is not
			// retried forever; distinct from an extraction failure.
			log.Printf("skipping %s: no extractable text", name)
			ingested[name] = struct{}{}
			continue
		}

		chunks := s.buildChunks(name, text, category)
		if err := s.vectorDB.Upsert(ctx, s.namespace, chunks); err != nil {
			report.Errors = append(report.Errors, types.IngestError{Filename: name, Message: err.Error()})
			continue
		}

		ingested[name] = struct{}{}
		report.IngestedFiles = append(report.IngestedFiles, name)
		report.TotalChunks += len(chunks)
	}

	// One ledger write per run, covering everything that succeeded even when
	// some documents failed.
	if err := ledger.Save(ingested); err != nil {
		report.Status = types.StatusError
		report.ErrorMessage = err.Error()
		return report
	}

	return report
}

func (s *IngestService) buildChunks(filename, text, category string) []types.Chunk {
	stem := utils.FileStem(filename)
	pieces := SplitText(text, s.chunkSize, s.overlapSize)
	chunks := make([]types.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, types.Chunk{
			ID:               types.ChunkID(stem, i),
			Text:             piece,
			Category:         category,
			ParentDocumentID: filename,
		})
	}
	return chunks
}
