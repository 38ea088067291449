package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/pfr-scraper/internal/platform/logging"
)

type FixtureInput struct {
	InputPath  string `validate:"required"`
	App        string `validate:"required"`
	Model      string `validate:"required"`
	PrimaryKey string `validate:"required"`
	OutputPath string `validate:"required"`
}

// FixtureRecord is one entry of a Django fixture list.
type FixtureRecord struct {
	Model  string         `json:"model"`
	PK     any            `json:"pk"`
	Fields map[string]any `json:"fields"`
}

type FixtureResult struct {
	OutputPath string `json:"output_path"`
	Records    int    `json:"records"`
}

// FixtureService converts a JSON array of objects into a loaddata fixture.
type FixtureService struct {
	files     RecordFile
	logger    *logging.Logger
	validator *validator.Validate
}

func NewFixtureService(files RecordFile, logger *logging.Logger) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureService{files: files, logger: logger, validator: validator.New()}
}

func (s *FixtureService) Run(ctx context.Context, input FixtureInput) (FixtureResult, error) {
	ctx, span := startRunSpan(ctx, "usecase.FixtureService.Run")
	defer span.End()

	if err := s.validator.StructCtx(ctx, input); err != nil {
		return FixtureResult{}, invalidInput(err)
	}

	records, err := s.files.ReadRecords(input.InputPath)
	if err != nil {
		return FixtureResult{}, err
	}

	model := strings.TrimSpace(input.App) + "." + strings.ToLower(strings.TrimSpace(input.Model))
	fixture := make([]FixtureRecord, 0, len(records))
	for i, record := range records {
		pk, ok := record[input.PrimaryKey]
		if !ok {
			return FixtureResult{}, invalidInput(errors.Newf("record %d has no %q field", i, input.PrimaryKey))
		}
		fixture = append(fixture, FixtureRecord{Model: model, PK: pk, Fields: record})
	}

	if err := s.files.WriteRecords(input.OutputPath, fixture); err != nil {
		return FixtureResult{}, err
	}

	s.logger.InfoContext(ctx, "fixture written", "model", model, "records", len(fixture), "output", input.OutputPath)
	return FixtureResult{OutputPath: input.OutputPath, Records: len(fixture)}, nil
}
