package combiner

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	draptolib "github.com/five82/drapto"

	"eventkit/internal/logging"
)

// Encoder re-encodes a finished clip into outputDir and returns the new path.
type Encoder interface {
	Encode(ctx context.Context, inputPath, outputDir string) (string, error)
}

// DraptoEncoder runs the drapto library in-process and logs its progress.
type DraptoEncoder struct {
	logger *slog.Logger
}

// NewDraptoEncoder constructs a DraptoEncoder.
func NewDraptoEncoder(logger *slog.Logger) *DraptoEncoder {
	return &DraptoEncoder{logger: logger}
}

// Encode produces <outputDir>/<stem>.mkv.
func (e *DraptoEncoder) Encode(ctx context.Context, inputPath, outputDir string) (string, error) {
	if strings.TrimSpace(inputPath) == "" {
		return "", errors.New("input path required")
	}
	if strings.TrimSpace(outputDir) == "" {
		return "", errors.New("output directory required")
	}

	encoder, err := draptolib.New(draptolib.WithResponsive())
	if err != nil {
		return "", err
	}
	rep := newLogReporter(e.logger.With(logging.String("input", filepath.Base(inputPath))))
	if _, err := encoder.EncodeWithReporter(ctx, inputPath, outputDir, rep); err != nil {
		return "", err
	}

	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return filepath.Join(outputDir, stem+".mkv"), nil
}

var _ Encoder = (*DraptoEncoder)(nil)
