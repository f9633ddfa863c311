// Package status carries user-visible notifications from anywhere in the
// application to the status bar.
package status

import (
	"time"

	"github.com/wbh1/jiratui/internal/pubsub"
)

// Level represents the severity of a status message.
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelDebug Level = "debug"
)

// Message is a status update to be displayed in the UI.
type Message struct {
	Level     Level
	Text      string
	Timestamp time.Time
}

// Service publishes status messages to subscribers.
type Service interface {
	pubsub.Subscriber[Message]

	Info(text string)
	Warn(text string)
	Error(text string)
	Debug(text string)
}

type service struct {
	*pubsub.Broker[Message]
}

func NewService() Service {
	return &service{Broker: pubsub.NewBroker[Message]()}
}

func (s *service) Info(text string)  { s.publish(LevelInfo, text) }
func (s *service) Warn(text string)  { s.publish(LevelWarn, text) }
func (s *service) Error(text string) { s.publish(LevelError, text) }
func (s *service) Debug(text string) { s.publish(LevelDebug, text) }

func (s *service) publish(level Level, text string) {
	s.Publish(pubsub.EventTypeCreated, Message{
		Level:     level,
		Text:      text,
		Timestamp: time.Now(),
	})
}
