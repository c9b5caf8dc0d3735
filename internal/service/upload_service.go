package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"ledger/internal/backend"
	"ledger/internal/models"
	"ledger/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUploadInProgress = errors.New("an upload is already in progress")
	ErrResetRequired    = errors.New("reset the current analysis before uploading another statement")
)

const (
	msgAnalysisFailed     = "Analysis failed. Please try again."
	msgBackendUnavailable = "Could not reach the analysis server. Please try again."
)

// Analyzer sends a statement to the analysis backend.
type Analyzer interface {
	Analyze(ctx context.Context, fileName string, content []byte) (*models.AnalysisResult, error)
}

// StageHook observes every stage change of a session.
type StageHook func(sessionID uuid.UUID, from, to models.Stage)

// UploadService drives a session through parsing and classifying for one
// upload. Each stage stays visible for at least its configured minimum,
// however fast the backend answers.
type UploadService struct {
	sessions  *SessionStore
	analyzer  Analyzer
	validator *Validator
	pacing    config.PacingConfig
	timeout   time.Duration
	after     func(time.Duration) <-chan time.Time
	hooks     []StageHook
	runs      sync.WaitGroup
	logger    *zap.Logger
}

func NewUploadService(
	sessions *SessionStore,
	analyzer Analyzer,
	validator *Validator,
	pacing config.PacingConfig,
	timeout time.Duration,
	logger *zap.Logger,
) *UploadService {
	return &UploadService{
		sessions:  sessions,
		analyzer:  analyzer,
		validator: validator,
		pacing:    pacing,
		timeout:   timeout,
		after:     time.After,
		logger:    logger,
	}
}

// OnStageChange registers a hook. Hooks run synchronously after the session
// lock is released and must not block.
func (s *UploadService) OnStageChange(hook StageHook) {
	s.hooks = append(s.hooks, hook)
}

// Submit validates the upload and, when it is a PDF, moves the session to
// parsing and starts the run in the background. A validation failure leaves
// the session idle with the message stored inline.
func (s *UploadService) Submit(sessionID uuid.UUID, upload Upload) (models.Session, error) {
	entry, err := s.sessions.entry(sessionID)
	if err != nil {
		return models.Session{}, err
	}

	entry.mu.Lock()
	switch {
	case entry.session.Stage.Busy():
		snap := entry.snapshot()
		entry.mu.Unlock()
		return snap, ErrUploadInProgress
	case entry.session.Stage == models.StageDone:
		snap := entry.snapshot()
		entry.mu.Unlock()
		return snap, ErrResetRequired
	}

	validated, err := s.validator.Validate(upload)
	if err != nil {
		entry.session.ValidationError = err.Error()
		entry.session.FileName = ""
		entry.session.UpdatedAt = s.sessions.now()
		snap := entry.snapshot()
		entry.mu.Unlock()

		s.logger.Info("Upload rejected",
			zap.String("session_id", sessionID.String()),
			zap.String("file", upload.FileName),
			zap.Error(err),
		)
		return snap, err
	}

	from := entry.session.Stage
	entry.session.Stage = models.StageParsing
	entry.session.FileName = validated.FileName
	entry.session.ValidationError = ""
	entry.session.Error = ""
	entry.session.UpdatedAt = s.sessions.now()
	snap := entry.snapshot()
	entry.mu.Unlock()

	s.notify(sessionID, from, models.StageParsing)
	s.logger.Info("Upload accepted",
		zap.String("session_id", sessionID.String()),
		zap.String("file", validated.FileName),
		zap.Int("bytes", len(validated.Content)),
	)

	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		s.run(entry, validated)
	}()

	return snap, nil
}

// Oversized reports whether a declared file size is over the upload limit,
// so callers can skip reading the body.
func (s *UploadService) Oversized(size int64) bool {
	return s.validator.Oversized(size)
}

// Wait blocks until every started run has finished.
func (s *UploadService) Wait() {
	s.runs.Wait()
}

// run is the sequential chain request → parsing gate → classifying gate.
// The request and the parsing gate run side by side and both must finish.
func (s *UploadService) run(entry *sessionEntry, upload Upload) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	type outcome struct {
		result *models.AnalysisResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := s.analyzer.Analyze(ctx, upload.FileName, upload.Content)
		done <- outcome{result: result, err: err}
	}()

	<-s.after(s.pacing.ParsingMin)
	out := <-done

	if out.err == nil && out.result == nil {
		out.err = errors.New("analysis backend returned no result")
	}
	if out.err != nil {
		s.fail(entry, out.err)
		return
	}

	if !s.advance(entry, models.StageClassifying, nil) {
		return
	}
	<-s.after(s.pacing.ClassifyingMin)
	s.advance(entry, models.StageDone, out.result)
}

func (s *UploadService) advance(entry *sessionEntry, next models.Stage, result *models.AnalysisResult) bool {
	entry.mu.Lock()
	from := entry.session.Stage
	if !from.CanAdvance(next) {
		entry.mu.Unlock()
		s.logger.Error("Refusing stage transition",
			zap.String("session_id", entry.session.ID.String()),
			zap.String("from", string(from)),
			zap.String("to", string(next)),
		)
		return false
	}
	entry.session.Stage = next
	if result != nil {
		entry.session.Analysis = result
	}
	entry.session.UpdatedAt = s.sessions.now()
	id := entry.session.ID
	entry.mu.Unlock()

	s.notify(id, from, next)
	if next == models.StageDone {
		s.logger.Info("Analysis ready",
			zap.String("session_id", id.String()),
			zap.Int("transactions", result.TransactionCount),
			zap.Int("categories", len(result.Categories)),
		)
	}
	return true
}

// fail unwinds the session to idle with a banner message. Any analysis
// already held by the session is left as it was.
func (s *UploadService) fail(entry *sessionEntry, err error) {
	message := userMessage(err)

	entry.mu.Lock()
	from := entry.session.Stage
	entry.session.Stage = models.StageIdle
	entry.session.Error = message
	entry.session.UpdatedAt = s.sessions.now()
	id := entry.session.ID
	entry.mu.Unlock()

	s.logger.Warn("Analysis failed",
		zap.String("session_id", id.String()),
		zap.String("message", message),
		zap.Error(err),
	)
	s.notify(id, from, models.StageIdle)
}

// Reset clears everything the session shows and returns it to idle.
func (s *UploadService) Reset(sessionID uuid.UUID) (models.Session, error) {
	entry, err := s.sessions.entry(sessionID)
	if err != nil {
		return models.Session{}, err
	}

	entry.mu.Lock()
	if entry.session.Stage.Busy() {
		snap := entry.snapshot()
		entry.mu.Unlock()
		return snap, ErrUploadInProgress
	}
	from := entry.session.Stage
	entry.session.Stage = models.StageIdle
	entry.session.FileName = ""
	entry.session.ValidationError = ""
	entry.session.Error = ""
	entry.session.Analysis = nil
	entry.session.UpdatedAt = s.sessions.now()
	snap := entry.snapshot()
	entry.mu.Unlock()

	if from != models.StageIdle {
		s.notify(sessionID, from, models.StageIdle)
	}
	return snap, nil
}

// DismissError hides the banner message.
func (s *UploadService) DismissError(sessionID uuid.UUID) (models.Session, error) {
	entry, err := s.sessions.entry(sessionID)
	if err != nil {
		return models.Session{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.session.Error = ""
	entry.session.UpdatedAt = s.sessions.now()
	return entry.snapshot(), nil
}

func (s *UploadService) notify(id uuid.UUID, from, to models.Stage) {
	s.logger.Debug("Stage changed",
		zap.String("session_id", id.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	for _, hook := range s.hooks {
		hook(id, from, to)
	}
}

func userMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return msgAnalysisFailed
	}
	if errors.Is(err, backend.ErrUnavailable) {
		return msgBackendUnavailable
	}
	return msgAnalysisFailed
}
