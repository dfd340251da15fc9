package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EventType identifies a round domain event.
type EventType string

const (
	EventTypeRoundStarted EventType = "RoundStarted"
	EventTypeBetAccepted  EventType = "BetAccepted"
	EventTypeRoundSettled EventType = "RoundSettled"
	EventTypeTimerTick    EventType = "TimerTick"
	EventTypeNotification EventType = "Notification"
)

// Event is the envelope every round event travels in, both over the
// WebSocket surface and on the message bus.
type Event struct {
	ID        string          `json:"id"`
	RoundID   string          `json:"round_id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// New wraps a payload in an event envelope. A payload that fails to
// marshal is a programming error; it is logged and the event carries
// null data rather than being dropped.
func New(eventType EventType, roundID string, payload any) Event {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", string(eventType)).Msg("failed to marshal event payload")
		data = []byte("null")
	}
	return Event{
		ID:        uuid.New().String(),
		RoundID:   roundID,
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// Sink receives round events. Implementations must not block the
// caller; slow consumers drop rather than stall the controller.
type Sink interface {
	Publish(ctx context.Context, evt Event)
}

// MultiSink fans one event out to several sinks.
type MultiSink []Sink

func (m MultiSink) Publish(ctx context.Context, evt Event) {
	for _, s := range m {
		s.Publish(ctx, evt)
	}
}

// Discard is a sink that drops everything.
type Discard struct{}

func (Discard) Publish(context.Context, Event) {}
