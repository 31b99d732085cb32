// Package observers provides observers for monitoring post workflows
package observers

import (
	"go.uber.org/zap"

	"github.com/anggasct/post"
)

// LoggingObserver writes structured log entries for workflow activity.
//
// Transitions and errors are logged at info and error level, everything else
// at debug level, so a production logger only records state changes.
type LoggingObserver struct {
	logger *zap.Logger
}

// NewLoggingObserver creates a new logging observer. A nil logger discards everything.
func NewLoggingObserver(logger *zap.Logger) *LoggingObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingObserver{logger: logger.Named("post")}
}

func postFields(p *post.Post) []zap.Field {
	return []zap.Field{
		zap.Stringer("post_id", p.ID()),
		zap.String("state", p.StateName()),
	}
}

// OnTransition logs transitions
func (o *LoggingObserver) OnTransition(p *post.Post, from, to string, event post.Event) {
	o.logger.Info("post transition",
		zap.Stringer("post_id", p.ID()),
		zap.String("from", from),
		zap.String("to", to),
		zap.String("event", event.GetName()),
		zap.Time("at", event.GetTimestamp()),
	)
}

// OnStateEnter logs state entry
func (o *LoggingObserver) OnStateEnter(p *post.Post, state string) {
	o.logger.Debug("entering state", postFields(p)...)
}

// OnStateExit logs state exit
func (o *LoggingObserver) OnStateExit(p *post.Post, state string) {
	o.logger.Debug("exiting state", zap.Stringer("post_id", p.ID()), zap.String("state", state))
}

// OnEventRejected logs operations that had no effect
func (o *LoggingObserver) OnEventRejected(p *post.Post, event post.Event, reason string) {
	o.logger.Debug("operation ignored",
		append(postFields(p), zap.String("event", event.GetName()), zap.String("reason", reason))...)
}

// OnTextAdded logs text appended to a draft
func (o *LoggingObserver) OnTextAdded(p *post.Post, text string) {
	o.logger.Debug("text added", append(postFields(p), zap.Int("bytes", len(text)))...)
}

// OnError logs errors
func (o *LoggingObserver) OnError(p *post.Post, err error) {
	o.logger.Error("post workflow error", append(postFields(p), zap.Error(err))...)
}
