package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"hatecrimes/internal"
	"hatecrimes/internal/catalog"
	"hatecrimes/internal/config"
)

type ProcessingService struct {
	cfg       config.Config
	validator *Validator
	log       *zap.SugaredLogger
}

func NewProcessingService(cfg config.Config, catalogs *catalog.Catalogs, log *zap.SugaredLogger) *ProcessingService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ProcessingService{cfg: cfg, validator: NewValidator(catalogs), log: log}
}

type ProcessResult struct {
	RunID    string
	Total    int
	Accepted int
	Rejected int
	Output   string
}

const defaultReportName = "validation.xlsx"

// ProcessFile validates every record in input and writes the report to output,
// or to OUTPUT_DIR when output is empty. Rejected rows never stop the run;
// only I/O failures do.
func (s *ProcessingService) ProcessFile(inputType, input, output string) (ProcessResult, error) {
	if strings.TrimSpace(output) == "" {
		output = filepath.Join(s.cfg.OutputDir, defaultReportName)
	}

	records, err := ExtractRecordsFromInput(inputType, input)
	if err != nil {
		return ProcessResult{}, fmt.Errorf("read records from %s: %w", input, err)
	}

	res, batch := s.ProcessRecords(records)
	if err := ExportResultToXLSX(batch, output); err != nil {
		return ProcessResult{}, fmt.Errorf("export report: %w", err)
	}
	res.Output = output
	s.log.Infow("report written", "run", res.RunID, "output", output)
	return res, nil
}

func (s *ProcessingService) ProcessRecords(records []internal.RawRecord) (ProcessResult, internal.BatchResult) {
	start := time.Now()
	runID := traceID()

	batch := s.validator.ValidateBatch(records)
	for _, verr := range batch.Errors {
		s.log.Debugw("row rejected", "run", runID, "row", verr.Index, "fields", verr.FieldNames(), "error", verr.Error())
	}

	res := ProcessResult{
		RunID:    runID,
		Total:    batch.Total(),
		Accepted: len(batch.Validated),
		Rejected: len(batch.Errors),
	}
	s.log.Infow("batch validated",
		"run", runID,
		"total", res.Total,
		"accepted", res.Accepted,
		"rejected", res.Rejected,
		"durationMs", time.Since(start).Milliseconds(),
	)
	return res, batch
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
