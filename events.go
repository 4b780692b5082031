package amigo

import (
	"encoding/json"

	"github.com/amigo-ai/client-go/internal/api"
)

// Event type discriminators carried in the "type" field of each
// streamed line.
const (
	EventTypeConversationCreated  = "conversation-created"
	EventTypeNewMessage           = "new-message"
	EventTypeInteractionComplete  = "interaction-complete"
	EventTypeUserMessageAvailable = "user-message-available"
	EventTypeCurrentAgentAction   = "current-agent-action"
	EventTypeError                = "error"
)

// ConversationEvent is one event from a conversation stream. Switch on
// the concrete type to handle it:
//
//	switch ev := stream.Event().(type) {
//	case *amigo.NewMessageEvent:
//	    fmt.Print(ev.Message)
//	case *amigo.InteractionCompleteEvent:
//	    fmt.Println()
//	}
type ConversationEvent interface {
	EventType() string
}

// ConversationCreatedEvent is the first event of a creation stream and
// carries the new conversation's ID.
type ConversationCreatedEvent struct {
	ConversationID string `json:"conversation_id"`
}

func (*ConversationCreatedEvent) EventType() string { return EventTypeConversationCreated }

// NewMessageEvent carries an incremental chunk of the agent's response.
type NewMessageEvent struct {
	Message string `json:"message"`
}

func (*NewMessageEvent) EventType() string { return EventTypeNewMessage }

// InteractionCompleteEvent marks the end of the agent's response and
// carries the assembled message.
type InteractionCompleteEvent struct {
	InteractionID string `json:"interaction_id"`
	MessageID     string `json:"message_id,omitempty"`
	FullMessage   string `json:"full_message"`
}

func (*InteractionCompleteEvent) EventType() string { return EventTypeInteractionComplete }

// UserMessageAvailableEvent carries the server's transcription of the
// user's submitted message, e.g. for voice input.
type UserMessageAvailableEvent struct {
	UserMessage string `json:"user_message"`
}

func (*UserMessageAvailableEvent) EventType() string { return EventTypeUserMessageAvailable }

// CurrentAgentActionEvent reports what the agent is doing while the
// caller waits, such as "thinking".
type CurrentAgentActionEvent struct {
	State string `json:"state"`
}

func (*CurrentAgentActionEvent) EventType() string { return EventTypeCurrentAgentAction }

// ErrorEvent is an in-stream error reported by the server. The stream
// may continue after one.
type ErrorEvent struct {
	Message string `json:"message"`
	Code    string `json:"error_code,omitempty"`
}

func (*ErrorEvent) EventType() string { return EventTypeError }

// UnknownEvent preserves events with an unrecognized discriminator so
// new server event types do not break older clients.
type UnknownEvent struct {
	Type string
	Raw  json.RawMessage
}

func (e *UnknownEvent) EventType() string { return e.Type }

// decodeConversationEvent parses one stream line into a typed event.
// Lines that are not valid JSON fail with a DecodeError; a valid line
// with an unknown type becomes an UnknownEvent.
func decodeConversationEvent(data []byte) (ConversationEvent, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &DecodeError{Err: err}
	}

	var ev ConversationEvent
	switch probe.Type {
	case EventTypeConversationCreated:
		ev = &ConversationCreatedEvent{}
	case EventTypeNewMessage:
		ev = &NewMessageEvent{}
	case EventTypeInteractionComplete:
		ev = &InteractionCompleteEvent{}
	case EventTypeUserMessageAvailable:
		ev = &UserMessageAvailableEvent{}
	case EventTypeCurrentAgentAction:
		ev = &CurrentAgentActionEvent{}
	case EventTypeError:
		ev = &ErrorEvent{}
	default:
		raw := make(json.RawMessage, len(data))
		copy(raw, data)
		return &UnknownEvent{Type: probe.Type, Raw: raw}, nil
	}

	if err := json.Unmarshal(data, ev); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return ev, nil
}

// EventStream iterates over the events of a streaming conversation
// response. It follows the bufio.Scanner pattern:
//
//	for stream.Next() {
//	    handle(stream.Event())
//	}
//	if err := stream.Err(); err != nil {
//	    return err
//	}
//
// Close must be called when abandoning a stream early; it is a no-op
// after the stream is exhausted.
type EventStream struct {
	lines *api.LineStream
	event ConversationEvent
	err   error
}

// Next advances to the next event. It returns false when the stream
// ends or fails; check Err to distinguish.
func (s *EventStream) Next() bool {
	if s.err != nil {
		return false
	}
	if !s.lines.Next() {
		s.err = wrapError(s.lines.Err())
		return false
	}
	ev, err := decodeConversationEvent([]byte(s.lines.Text()))
	if err != nil {
		s.err = err
		s.lines.Close()
		return false
	}
	s.event = ev
	return true
}

// Event returns the event read by the last successful call to Next.
func (s *EventStream) Event() ConversationEvent {
	return s.event
}

// Err returns the error that ended iteration, or nil if the stream
// finished normally.
func (s *EventStream) Err() error {
	return s.err
}

// Close releases the underlying connection. Safe to call multiple times.
func (s *EventStream) Close() error {
	return s.lines.Close()
}
