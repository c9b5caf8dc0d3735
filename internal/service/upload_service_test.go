package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ledger/internal/analytics"
	"ledger/internal/backend"
	"ledger/internal/models"
	"ledger/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fakeAnalyzer answers immediately and counts calls.
type fakeAnalyzer struct {
	mu     sync.Mutex
	calls  int
	names  []string
	result *models.AnalysisResult
	err    error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, fileName string, content []byte) (*models.AnalysisResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.names = append(f.names, fileName)
	return f.result, f.err
}

func (f *fakeAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type transition struct {
	from, to models.Stage
	at       time.Time
}

type recorder struct {
	mu          sync.Mutex
	transitions []transition
}

func (r *recorder) hook(_ uuid.UUID, from, to models.Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, transition{from: from, to: to, at: time.Now()})
}

func (r *recorder) stages() []models.Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Stage
	for _, t := range r.transitions {
		out = append(out, t.to)
	}
	return out
}

func sampleResult() *models.AnalysisResult {
	return analytics.Summarize(analytics.SampleTransactions(), analytics.DefaultOptions())
}

func pdfUpload() Upload {
	return Upload{FileName: "statement.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.7\n...")}
}

func newTestUploadService(analyzer Analyzer, pacing config.PacingConfig) (*UploadService, *SessionStore, *recorder) {
	logger := zap.NewNop()
	store := NewSessionStore(time.Hour, logger)
	validator := NewValidator(&config.UploadConfig{MaxSizeMB: 20}, nil, logger)
	svc := NewUploadService(store, analyzer, validator, pacing, time.Minute, logger)
	rec := &recorder{}
	svc.OnStageChange(rec.hook)
	return svc, store, rec
}

func TestSubmit_NonPDFMakesNoRequest(t *testing.T) {
	analyzer := &fakeAnalyzer{result: sampleResult()}
	svc, store, rec := newTestUploadService(analyzer, config.PacingConfig{})
	session := store.Create()

	uploads := []Upload{
		{FileName: "statement.csv", ContentType: "text/csv", Content: []byte("a,b")},
		{FileName: "photo.png", ContentType: "image/png", Content: []byte{0x89, 'P', 'N', 'G'}},
		{FileName: "noext", ContentType: "application/octet-stream", Content: []byte("x")},
	}
	for _, upload := range uploads {
		snap, err := svc.Submit(session.ID, upload)
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Reason != ReasonUnsupportedType {
			t.Fatalf("%s: expected unsupported type validation error, got %v", upload.FileName, err)
		}
		if snap.Stage != models.StageIdle {
			t.Errorf("%s: stage = %s, want idle", upload.FileName, snap.Stage)
		}
		if snap.ValidationError == "" {
			t.Errorf("%s: validation message should be stored inline", upload.FileName)
		}
	}
	svc.Wait()

	if analyzer.callCount() != 0 {
		t.Errorf("analyzer called %d times, want 0", analyzer.callCount())
	}
	if len(rec.stages()) != 0 {
		t.Errorf("unexpected transitions: %v", rec.stages())
	}
}

func TestSubmit_StagesAdvanceInOrderWithMinimumDurations(t *testing.T) {
	analyzer := &fakeAnalyzer{result: sampleResult()}
	pacing := config.PacingConfig{ParsingMin: 1500 * time.Millisecond, ClassifyingMin: time.Second}
	svc, store, rec := newTestUploadService(analyzer, pacing)

	var mu sync.Mutex
	var waits []time.Duration
	var stagesAtWait []models.Stage
	session := store.Create()
	svc.after = func(d time.Duration) <-chan time.Time {
		snap, _ := store.Get(session.ID)
		mu.Lock()
		waits = append(waits, d)
		stagesAtWait = append(stagesAtWait, snap.Stage)
		mu.Unlock()
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}

	snap, err := svc.Submit(session.ID, pdfUpload())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if snap.Stage != models.StageParsing {
		t.Errorf("stage after submit = %s, want parsing", snap.Stage)
	}
	svc.Wait()

	want := []models.Stage{models.StageParsing, models.StageClassifying, models.StageDone}
	got := rec.stages()
	if len(got) != len(want) {
		t.Fatalf("transitions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("transitions = %v, want %v", got, want)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(waits) != 2 || waits[0] != 1500*time.Millisecond || waits[1] != time.Second {
		t.Errorf("gates = %v, want [1.5s 1s]", waits)
	}
	if stagesAtWait[0] != models.StageParsing || stagesAtWait[1] != models.StageClassifying {
		t.Errorf("gates ran during %v, want [parsing classifying]", stagesAtWait)
	}

	final, _ := store.Get(session.ID)
	if final.Stage != models.StageDone || final.Analysis == nil {
		t.Fatalf("final session = %+v", final)
	}
	if final.Analysis.TransactionCount != 20 {
		t.Errorf("TransactionCount = %d", final.Analysis.TransactionCount)
	}
	if analyzer.callCount() != 1 {
		t.Errorf("analyzer called %d times, want exactly 1", analyzer.callCount())
	}
}

func TestSubmit_ZeroLatencyBackendStillHoldsStages(t *testing.T) {
	analyzer := &fakeAnalyzer{result: sampleResult()}
	pacing := config.PacingConfig{ParsingMin: 60 * time.Millisecond, ClassifyingMin: 40 * time.Millisecond}
	svc, store, rec := newTestUploadService(analyzer, pacing)
	session := store.Create()

	if _, err := svc.Submit(session.ID, pdfUpload()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	svc.Wait()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.transitions) != 3 {
		t.Fatalf("got %d transitions, want 3", len(rec.transitions))
	}
	parsing := rec.transitions[1].at.Sub(rec.transitions[0].at)
	classifying := rec.transitions[2].at.Sub(rec.transitions[1].at)
	if parsing < pacing.ParsingMin {
		t.Errorf("parsing held %v, want >= %v", parsing, pacing.ParsingMin)
	}
	if classifying < pacing.ClassifyingMin {
		t.Errorf("classifying held %v, want >= %v", classifying, pacing.ClassifyingMin)
	}
}

func TestSubmit_BackendErrorReturnsToIdle(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"detail from backend", &backend.APIError{StatusCode: 422, Detail: "No transactions found."}, "No transactions found."},
		{"no detail", &backend.APIError{StatusCode: 500}, msgAnalysisFailed},
		{"network failure", errors.Join(backend.ErrUnavailable, errors.New("connection refused")), msgBackendUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{err: tt.err}
			svc, store, rec := newTestUploadService(analyzer, config.PacingConfig{})
			session := store.Create()

			if _, err := svc.Submit(session.ID, pdfUpload()); err != nil {
				t.Fatalf("Submit failed: %v", err)
			}
			svc.Wait()

			final, _ := store.Get(session.ID)
			if final.Stage != models.StageIdle {
				t.Errorf("stage = %s, want idle", final.Stage)
			}
			if final.Error != tt.message {
				t.Errorf("Error = %q, want %q", final.Error, tt.message)
			}
			if final.Analysis != nil {
				t.Error("failed run must not set an analysis")
			}
			got := rec.stages()
			if len(got) != 2 || got[0] != models.StageParsing || got[1] != models.StageIdle {
				t.Errorf("transitions = %v, want [parsing idle]", got)
			}

			// The banner can be dismissed and a new upload is accepted.
			dismissed, err := svc.DismissError(session.ID)
			if err != nil || dismissed.Error != "" {
				t.Errorf("DismissError = %+v, %v", dismissed, err)
			}
			analyzer.err = nil
			analyzer.result = sampleResult()
			if _, err := svc.Submit(session.ID, pdfUpload()); err != nil {
				t.Errorf("retry rejected: %v", err)
			}
			svc.Wait()
		})
	}
}

func TestFail_LeavesExistingAnalysisUntouched(t *testing.T) {
	svc, store, _ := newTestUploadService(&fakeAnalyzer{}, config.PacingConfig{})
	session := store.Create()
	entry, _ := store.entry(session.ID)

	previous := sampleResult()
	entry.mu.Lock()
	entry.session.Analysis = previous
	entry.session.Stage = models.StageParsing
	entry.mu.Unlock()

	svc.fail(entry, &backend.APIError{StatusCode: 500, Detail: "boom"})

	final, _ := store.Get(session.ID)
	if final.Analysis != previous {
		t.Error("analysis was replaced by a failed run")
	}
	if final.Analysis.IdleCash.MonthlyBurn != 42717 {
		t.Error("analysis was mutated by a failed run")
	}
	if final.Stage != models.StageIdle || final.Error != "boom" {
		t.Errorf("session = %+v", final)
	}
}

func TestSubmit_StageGating(t *testing.T) {
	release := make(chan time.Time)
	analyzer := &fakeAnalyzer{result: sampleResult()}
	svc, store, _ := newTestUploadService(analyzer, config.PacingConfig{})
	svc.after = func(time.Duration) <-chan time.Time { return release }
	session := store.Create()

	if _, err := svc.Submit(session.ID, pdfUpload()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := svc.Submit(session.ID, pdfUpload()); !errors.Is(err, ErrUploadInProgress) {
		t.Errorf("second submit = %v, want ErrUploadInProgress", err)
	}
	if _, err := svc.Reset(session.ID); !errors.Is(err, ErrUploadInProgress) {
		t.Errorf("reset mid-run = %v, want ErrUploadInProgress", err)
	}

	close(release)
	svc.Wait()

	if _, err := svc.Submit(session.ID, pdfUpload()); !errors.Is(err, ErrResetRequired) {
		t.Errorf("submit after done = %v, want ErrResetRequired", err)
	}
	if analyzer.callCount() != 1 {
		t.Errorf("analyzer called %d times, want 1", analyzer.callCount())
	}
}

func TestReset_ClearsEverything(t *testing.T) {
	svc, store, rec := newTestUploadService(&fakeAnalyzer{result: sampleResult()}, config.PacingConfig{})
	session := store.Create()

	if _, err := svc.Submit(session.ID, pdfUpload()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	svc.Wait()

	snap, err := svc.Reset(session.ID)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if snap.Stage != models.StageIdle || snap.Analysis != nil || snap.FileName != "" || snap.Error != "" || snap.ValidationError != "" {
		t.Errorf("session after reset = %+v", snap)
	}
	got := rec.stages()
	if got[len(got)-1] != models.StageIdle {
		t.Errorf("last transition = %s, want idle", got[len(got)-1])
	}
}

func TestSubmit_UnknownSession(t *testing.T) {
	svc, _, _ := newTestUploadService(&fakeAnalyzer{}, config.PacingConfig{})
	if _, err := svc.Submit(uuid.New(), pdfUpload()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSubmit_ForwardsPDFNameForMIMEOnlyUploads(t *testing.T) {
	analyzer := &fakeAnalyzer{result: sampleResult()}
	svc, store, _ := newTestUploadService(analyzer, config.PacingConfig{})
	session := store.Create()

	upload := Upload{FileName: "download", ContentType: "application/pdf; charset=binary", Content: []byte("%PDF-")}
	snap, err := svc.Submit(session.ID, upload)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	svc.Wait()

	if snap.FileName != "download.pdf" {
		t.Errorf("FileName = %q, want download.pdf", snap.FileName)
	}
	if len(analyzer.names) != 1 || analyzer.names[0] != "download.pdf" {
		t.Errorf("forwarded names = %v", analyzer.names)
	}
}
