// Package analysis stores an uploaded resume transiently, extracts its
// text and scores it.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/extract"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/logging"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/metrics"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/scoring"
)

// TextExtractor reads a stored document of a known kind as plain text.
type TextExtractor interface {
	Extract(ctx context.Context, path string, kind extract.Kind) (string, error)
}

// Upload is one received resume file.
type Upload struct {
	Filename string
	MIMEType string
	// Size is the declared size in bytes; zero or negative means unknown.
	Size int64
	Body io.Reader
}

// Service runs the upload → extract → score pipeline.
type Service struct {
	extractor TextExtractor
	scorer    *scoring.Scorer
	uploadDir string
	maxBytes  int64
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// Options configure a Service. Zero values select defaults.
type Options struct {
	UploadDir string
	MaxBytes  int64
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
}

// previewChars bounds the extracted text written to debug logs.
const previewChars = 200

// DefaultMaxBytes is the upload size limit when Options.MaxBytes is unset.
const DefaultMaxBytes = 10 * 1024 * 1024

// NewService wires an extractor and scorer into a Service.
func NewService(extractor TextExtractor, scorer *scoring.Scorer, opts Options) *Service {
	if opts.UploadDir == "" {
		opts.UploadDir = os.TempDir()
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Service{
		extractor: extractor,
		scorer:    scorer,
		uploadDir: opts.UploadDir,
		maxBytes:  opts.MaxBytes,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}
}

// MaxBytes is the largest accepted upload.
func (s *Service) MaxBytes() int64 {
	return s.maxBytes
}

// Analyze validates the upload, writes it to a uniquely named temp file,
// extracts its text and scores it. The temp file is removed on every path.
// Errors are *InputError or *ExtractionError.
func (s *Service) Analyze(ctx context.Context, up Upload) (scoring.Result, error) {
	start := time.Now()

	res, err := s.analyze(ctx, up)

	var inErr *InputError
	switch {
	case err == nil:
		s.metrics.ObserveAnalysis(metrics.OutcomeScored, res.Score, time.Since(start))
		s.logger.Info("resume analyzed",
			zap.String("filename", up.Filename),
			zap.Int("score", res.Score),
			zap.Duration("duration", time.Since(start)),
		)
	case errors.As(err, &inErr):
		s.metrics.ObserveAnalysis(metrics.OutcomeRejected, 0, time.Since(start))
		s.logger.Info("resume rejected",
			zap.String("filename", up.Filename),
			zap.String("mime_type", up.MIMEType),
			zap.String("reason", inErr.Message),
		)
	default:
		s.metrics.ObserveAnalysis(metrics.OutcomeExtractionError, 0, time.Since(start))
		s.logger.Error("resume analysis failed",
			zap.String("filename", up.Filename),
			zap.Error(err),
		)
	}
	return res, err
}

func (s *Service) analyze(ctx context.Context, up Upload) (scoring.Result, error) {
	if up.Body == nil || up.Filename == "" {
		return scoring.Result{}, &InputError{Message: MsgNoFile, Err: ErrNoFile}
	}

	kind, err := extract.Resolve(up.Filename, up.MIMEType)
	if err != nil {
		return scoring.Result{}, &InputError{Message: err.Error(), Err: err}
	}
	if up.Size > s.maxBytes {
		return scoring.Result{}, &InputError{Message: MsgTooLarge, Err: ErrTooLarge}
	}

	s.logger.Debug("resume received",
		zap.String("filename", up.Filename),
		zap.Stringer("kind", kind),
		zap.Int64("size", up.Size),
	)

	path, err := s.store(up.Body, kind)
	if err != nil {
		var inErr *InputError
		if errors.As(err, &inErr) {
			return scoring.Result{}, err
		}
		return scoring.Result{}, &ExtractionError{Err: err}
	}
	defer s.remove(path)

	text, err := s.extractor.Extract(ctx, path, kind)
	if err != nil {
		return scoring.Result{}, &ExtractionError{Err: err}
	}
	s.logger.Debug("resume text extracted",
		zap.Stringer("kind", kind),
		zap.Int("chars", len([]rune(text))),
		zap.String("preview", logging.Truncate(text, previewChars)),
	)

	return s.scorer.Score(text), nil
}

// store copies body into a new temp file, reading at most maxBytes+1
// bytes so oversized bodies with no declared size are still rejected.
func (s *Service) store(body io.Reader, kind extract.Kind) (string, error) {
	path := filepath.Join(s.uploadDir, "resume-"+uuid.NewString()+kind.Extension())

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	n, copyErr := io.Copy(f, io.LimitReader(body, s.maxBytes+1))
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		s.remove(path)
		return "", fmt.Errorf("failed to store upload: %w", copyErr)
	case closeErr != nil:
		s.remove(path)
		return "", fmt.Errorf("failed to store upload: %w", closeErr)
	case n > s.maxBytes:
		s.remove(path)
		return "", &InputError{Message: MsgTooLarge, Err: ErrTooLarge}
	}
	return path, nil
}

func (s *Service) remove(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("failed to remove temp upload", zap.String("path", path), zap.Error(err))
	}
}
