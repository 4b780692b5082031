package amigo

import (
	"errors"
	"testing"
)

func TestDecodeConversationEvent(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		check func(t *testing.T, ev ConversationEvent)
	}{
		{
			name: "conversation created",
			line: `{"type":"conversation-created","conversation_id":"conv-1"}`,
			check: func(t *testing.T, ev ConversationEvent) {
				created, ok := ev.(*ConversationCreatedEvent)
				if !ok {
					t.Fatalf("event type = %T", ev)
				}
				if created.ConversationID != "conv-1" {
					t.Errorf("ConversationID = %q", created.ConversationID)
				}
			},
		},
		{
			name: "new message",
			line: `{"type":"new-message","message":"Hello"}`,
			check: func(t *testing.T, ev ConversationEvent) {
				msg, ok := ev.(*NewMessageEvent)
				if !ok {
					t.Fatalf("event type = %T", ev)
				}
				if msg.Message != "Hello" {
					t.Errorf("Message = %q", msg.Message)
				}
			},
		},
		{
			name: "interaction complete",
			line: `{"type":"interaction-complete","interaction_id":"int-9","full_message":"Hello there"}`,
			check: func(t *testing.T, ev ConversationEvent) {
				done, ok := ev.(*InteractionCompleteEvent)
				if !ok {
					t.Fatalf("event type = %T", ev)
				}
				if done.InteractionID != "int-9" || done.FullMessage != "Hello there" {
					t.Errorf("event = %+v", done)
				}
			},
		},
		{
			name: "user message available",
			line: `{"type":"user-message-available","user_message":"hi"}`,
			check: func(t *testing.T, ev ConversationEvent) {
				if _, ok := ev.(*UserMessageAvailableEvent); !ok {
					t.Fatalf("event type = %T", ev)
				}
			},
		},
		{
			name: "current agent action",
			line: `{"type":"current-agent-action","state":"thinking"}`,
			check: func(t *testing.T, ev ConversationEvent) {
				action, ok := ev.(*CurrentAgentActionEvent)
				if !ok {
					t.Fatalf("event type = %T", ev)
				}
				if action.State != "thinking" {
					t.Errorf("State = %q", action.State)
				}
			},
		},
		{
			name: "error event",
			line: `{"type":"error","message":"agent unavailable","error_code":"agent_down"}`,
			check: func(t *testing.T, ev ConversationEvent) {
				errEv, ok := ev.(*ErrorEvent)
				if !ok {
					t.Fatalf("event type = %T", ev)
				}
				if errEv.Message != "agent unavailable" || errEv.Code != "agent_down" {
					t.Errorf("event = %+v", errEv)
				}
			},
		},
		{
			name: "unknown type preserved",
			line: `{"type":"totally-new-event","payload":{"x":1}}`,
			check: func(t *testing.T, ev ConversationEvent) {
				unknown, ok := ev.(*UnknownEvent)
				if !ok {
					t.Fatalf("event type = %T", ev)
				}
				if unknown.Type != "totally-new-event" {
					t.Errorf("Type = %q", unknown.Type)
				}
				if len(unknown.Raw) == 0 {
					t.Error("Raw should hold the original line")
				}
			},
		},
		{
			name: "missing type treated as unknown",
			line: `{"message":"no discriminator"}`,
			check: func(t *testing.T, ev ConversationEvent) {
				if _, ok := ev.(*UnknownEvent); !ok {
					t.Fatalf("event type = %T", ev)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := decodeConversationEvent([]byte(tt.line))
			if err != nil {
				t.Fatalf("decodeConversationEvent() error = %v", err)
			}
			if ev.EventType() == "" && tt.name != "missing type treated as unknown" {
				t.Error("EventType() should not be empty")
			}
			tt.check(t, ev)
		})
	}
}

func TestDecodeConversationEvent_InvalidJSON(t *testing.T) {
	_, err := decodeConversationEvent([]byte(`{not json`))
	if !errors.Is(err, ErrDecode) {
		t.Errorf("error = %v, want match for ErrDecode", err)
	}
}

func TestEventType_Constants(t *testing.T) {
	tests := []struct {
		ev   ConversationEvent
		want string
	}{
		{&ConversationCreatedEvent{}, EventTypeConversationCreated},
		{&NewMessageEvent{}, EventTypeNewMessage},
		{&InteractionCompleteEvent{}, EventTypeInteractionComplete},
		{&UserMessageAvailableEvent{}, EventTypeUserMessageAvailable},
		{&CurrentAgentActionEvent{}, EventTypeCurrentAgentAction},
		{&ErrorEvent{}, EventTypeError},
		{&UnknownEvent{Type: "custom"}, "custom"},
	}
	for _, tt := range tests {
		if got := tt.ev.EventType(); got != tt.want {
			t.Errorf("%T.EventType() = %q, want %q", tt.ev, got, tt.want)
		}
	}
}
