package game

import (
	"time"

	"github.com/sirupsen/logrus"
)

// ScoreReport is emitted once per session, when the clock runs out
type ScoreReport struct {
	SessionID string
	Round     int
	Mines     int
	EndedAt   time.Time
}

type ScoreReporter interface {
	ReportScore(ScoreReport)
}

// LogReporter writes scores to a logrus logger, or the standard logger if
// none is set
type LogReporter struct {
	Logger logrus.FieldLogger
}

func (reporter LogReporter) ReportScore(report ScoreReport) {
	logger := reporter.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	logger.WithFields(logrus.Fields{
		"session": report.SessionID,
		"round":   report.Round,
		"mines":   report.Mines,
		"ended":   report.EndedAt.Format(time.RFC3339),
	}).Info("final score")
}

// ScoreReporterFunc adapts a plain function to a ScoreReporter
type ScoreReporterFunc func(ScoreReport)

func (fn ScoreReporterFunc) ReportScore(report ScoreReport) {
	fn(report)
}
