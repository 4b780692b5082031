package amigo

import (
	"context"
	"net/http"
	"net/url"
)

// ConversationResource provides access to conversation operations.
type ConversationResource struct {
	client *Client
}

// Create starts a new conversation and returns the creation stream.
// The first event is a ConversationCreatedEvent carrying the new
// conversation's ID; the service's opening message follows as
// NewMessageEvent chunks. The caller owns the stream and must drain
// or Close it.
func (r *ConversationResource) Create(ctx context.Context, req *CreateConversationRequest, params *CreateConversationParams) (*EventStream, error) {
	return r.stream(ctx, "conversation/", params.values(), req)
}

// Interact submits a user message and returns the response stream.
func (r *ConversationResource) Interact(ctx context.Context, conversationID string, req *InteractRequest, params *InteractParams) (*EventStream, error) {
	return r.stream(ctx, "conversation/"+url.PathEscape(conversationID)+"/interact", params.values(), req)
}

func (r *ConversationResource) stream(ctx context.Context, path string, query url.Values, body any) (*EventStream, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}
	lines, err := r.client.apiClient.StreamLines(ctx, http.MethodPost, r.client.apiClient.OrgPath(path), query, body)
	if err != nil {
		return nil, wrapError(err)
	}
	return &EventStream{lines: lines}, nil
}

// Finish ends a conversation. Finished conversations reject further
// interactions.
func (r *ConversationResource) Finish(ctx context.Context, conversationID string) error {
	if err := r.client.checkClosed(); err != nil {
		return err
	}
	path := r.client.apiClient.OrgPath("conversation/" + url.PathEscape(conversationID) + "/finish/")
	return wrapError(r.client.apiClient.Do(ctx, http.MethodPost, path, nil, nil, nil))
}

// List returns the organization's conversations, newest first.
func (r *ConversationResource) List(ctx context.Context, params *ListConversationsParams) (*ConversationList, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}
	var out ConversationList
	path := r.client.apiClient.OrgPath("conversation/")
	if err := r.client.apiClient.Do(ctx, http.MethodGet, path, params.values(), nil, &out); err != nil {
		return nil, wrapError(err)
	}
	return &out, nil
}

// Messages returns the messages of a conversation.
func (r *ConversationResource) Messages(ctx context.Context, conversationID string, params *ListMessagesParams) (*MessageList, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}
	var out MessageList
	path := r.client.apiClient.OrgPath("conversation/" + url.PathEscape(conversationID) + "/messages/")
	if err := r.client.apiClient.Do(ctx, http.MethodGet, path, params.values(), nil, &out); err != nil {
		return nil, wrapError(err)
	}
	return &out, nil
}

// RecommendResponses returns suggested user replies for an interaction.
func (r *ConversationResource) RecommendResponses(ctx context.Context, conversationID, interactionID string) (*RecommendedResponses, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}
	var out RecommendedResponses
	path := r.client.apiClient.OrgPath("conversation/" + url.PathEscape(conversationID) +
		"/interaction/" + url.PathEscape(interactionID) + "/recommend_responses")
	if err := r.client.apiClient.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, wrapError(err)
	}
	return &out, nil
}

// InteractionInsights returns the agent's analysis of an interaction.
func (r *ConversationResource) InteractionInsights(ctx context.Context, conversationID, interactionID string) (*InteractionInsights, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}
	var out InteractionInsights
	path := r.client.apiClient.OrgPath("conversation/" + url.PathEscape(conversationID) +
		"/interaction/" + url.PathEscape(interactionID) + "/insights")
	if err := r.client.apiClient.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, wrapError(err)
	}
	return &out, nil
}

// MessageSource returns a pre-signed URL for a message's source media,
// such as recorded audio for voice messages.
func (r *ConversationResource) MessageSource(ctx context.Context, conversationID, messageID string) (*MessageSource, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}
	var out MessageSource
	path := r.client.apiClient.OrgPath("conversation/" + url.PathEscape(conversationID) +
		"/messages/" + url.PathEscape(messageID) + "/source")
	if err := r.client.apiClient.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, wrapError(err)
	}
	return &out, nil
}

// GenerateStarters asks a service for conversation openers.
func (r *ConversationResource) GenerateStarters(ctx context.Context, req *ConversationStarterRequest) (*ConversationStarters, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}
	var out ConversationStarters
	path := r.client.apiClient.OrgPath("conversation/conversation_starter")
	if err := r.client.apiClient.Do(ctx, http.MethodPost, path, nil, req, &out); err != nil {
		return nil, wrapError(err)
	}
	return &out, nil
}
