package models

type Stage string

const (
	StageIdle        Stage = "idle"
	StageParsing     Stage = "parsing"
	StageClassifying Stage = "classifying"
	StageDone        Stage = "done"
)

// CanAdvance reports whether a run may move from s to next. Returning to
// idle is handled separately by failure and reset.
func (s Stage) CanAdvance(next Stage) bool {
	switch s {
	case StageIdle:
		return next == StageParsing
	case StageParsing:
		return next == StageClassifying
	case StageClassifying:
		return next == StageDone
	default:
		return false
	}
}

// Busy reports whether a run is in flight.
func (s Stage) Busy() bool {
	return s == StageParsing || s == StageClassifying
}
