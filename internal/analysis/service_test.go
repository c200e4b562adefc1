package analysis

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/extract"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/metrics"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/scoring"
)

type fakeExtractor struct {
	mu    sync.Mutex
	text  string
	err   error
	paths []string
	kinds []extract.Kind
	// exists records whether the temp file was present during extraction.
	exists []bool
}

func (f *fakeExtractor) Extract(_ context.Context, path string, kind extract.Kind) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, statErr := os.Stat(path)
	f.paths = append(f.paths, path)
	f.kinds = append(f.kinds, kind)
	f.exists = append(f.exists, statErr == nil)
	return f.text, f.err
}

const sampleResume = "Jane Doe jane@example.com 555-123-4567\n" +
	"Experience: developed and implemented JavaScript, React, Python and Java services.\n" +
	"Education: State University. Strong communication and teamwork."

func newTestService(t *testing.T, fx *fakeExtractor, maxBytes int64) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	svc := NewService(fx, scoring.NewScorer(scoring.DefaultCatalog()), Options{
		UploadDir: dir,
		MaxBytes:  maxBytes,
		Logger:    zaptest.NewLogger(t),
		Metrics:   metrics.New(),
	})
	return svc, dir
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp upload should be removed")
}

func TestAnalyze_ScoresPDF(t *testing.T) {
	fx := &fakeExtractor{text: sampleResume}
	svc, dir := newTestService(t, fx, 0)

	res, err := svc.Analyze(context.Background(), Upload{
		Filename: "cv.pdf",
		MIMEType: extract.MIMEPDF,
		Size:     12,
		Body:     strings.NewReader("%PDF-1.4 ..."),
	})
	require.NoError(t, err)

	assert.Equal(t, scoring.NewScorer(scoring.DefaultCatalog()).Score(sampleResume), res)
	require.Len(t, fx.paths, 1)
	assert.Equal(t, extract.KindPDF, fx.kinds[0])
	assert.True(t, fx.exists[0])
	assert.True(t, strings.HasSuffix(fx.paths[0], ".pdf"))
	assertDirEmpty(t, dir)
}

func TestAnalyze_InputErrors(t *testing.T) {
	tests := []struct {
		name    string
		upload  Upload
		wantMsg string
		wantErr error
	}{
		{
			name:    "no file",
			upload:  Upload{},
			wantMsg: MsgNoFile,
			wantErr: ErrNoFile,
		},
		{
			name:    "txt file",
			upload:  Upload{Filename: "cv.txt", MIMEType: "text/plain", Body: strings.NewReader("hello")},
			wantMsg: "Unsupported file format",
			wantErr: extract.ErrUnsupportedFormat,
		},
		{
			name:    "mismatched mime",
			upload:  Upload{Filename: "cv.pdf", MIMEType: "image/png", Body: strings.NewReader("png")},
			wantMsg: extract.ErrInvalidType.Error(),
			wantErr: extract.ErrInvalidType,
		},
		{
			name:    "declared too large",
			upload:  Upload{Filename: "cv.docx", MIMEType: extract.MIMEDOCX, Size: 65, Body: strings.NewReader("x")},
			wantMsg: MsgTooLarge,
			wantErr: ErrTooLarge,
		},
		{
			name:    "undeclared too large",
			upload:  Upload{Filename: "cv.docx", MIMEType: extract.MIMEDOCX, Body: bytes.NewReader(make([]byte, 65))},
			wantMsg: MsgTooLarge,
			wantErr: ErrTooLarge,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := &fakeExtractor{text: sampleResume}
			svc, dir := newTestService(t, fx, 64)

			_, err := svc.Analyze(context.Background(), tt.upload)
			var inErr *InputError
			require.ErrorAs(t, err, &inErr)
			assert.Equal(t, tt.wantMsg, inErr.Message)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, fx.paths, "extraction must not run")
			assertDirEmpty(t, dir)
		})
	}
}

func TestAnalyze_ExactLimitAccepted(t *testing.T) {
	fx := &fakeExtractor{text: "x"}
	svc, _ := newTestService(t, fx, 64)

	_, err := svc.Analyze(context.Background(), Upload{
		Filename: "cv.doc",
		Body:     bytes.NewReader(make([]byte, 64)),
	})
	require.NoError(t, err)
	assert.Equal(t, []extract.Kind{extract.KindDOC}, fx.kinds)
}

func TestAnalyze_ExtractionFailureRemovesFile(t *testing.T) {
	boom := errors.New("encrypted pdf")
	fx := &fakeExtractor{err: boom}
	svc, dir := newTestService(t, fx, 0)

	_, err := svc.Analyze(context.Background(), Upload{
		Filename: "cv.pdf",
		MIMEType: "application/octet-stream",
		Body:     strings.NewReader("%PDF"),
	})
	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "encrypted pdf", exErr.Details())
	assertDirEmpty(t, dir)
}

func TestAnalyze_MissingUploadDir(t *testing.T) {
	fx := &fakeExtractor{text: "x"}
	svc := NewService(fx, scoring.NewScorer(scoring.DefaultCatalog()), Options{
		UploadDir: t.TempDir() + "/does/not/exist",
	})

	_, err := svc.Analyze(context.Background(), Upload{Filename: "cv.pdf", Body: strings.NewReader("x")})
	var exErr *ExtractionError
	assert.ErrorAs(t, err, &exErr)
	assert.Empty(t, fx.paths)
}

func TestAnalyze_ConcurrentUploadsUseUniquePaths(t *testing.T) {
	fx := &fakeExtractor{text: sampleResume}
	svc, dir := newTestService(t, fx, 0)

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Analyze(context.Background(), Upload{
				Filename: "same-name.pdf",
				MIMEType: extract.MIMEPDF,
				Body:     strings.NewReader("%PDF"),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	seen := make(map[string]bool)
	for _, p := range fx.paths {
		assert.False(t, seen[p], "path reused: %s", p)
		seen[p] = true
	}
	assert.Len(t, seen, n)
	assertDirEmpty(t, dir)
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService(&fakeExtractor{}, scoring.NewScorer(scoring.DefaultCatalog()), Options{})
	assert.Equal(t, int64(DefaultMaxBytes), svc.MaxBytes())
	assert.Equal(t, os.TempDir(), svc.uploadDir)
}
