package amigo

import (
	"net/url"
	"strconv"
	"time"
)

// Conversation is a single conversation between a user and a service.
type Conversation struct {
	ID         string     `json:"id"`
	ServiceID  string     `json:"service_id"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// ConversationList is a paginated list of conversations.
type ConversationList struct {
	Conversations     []Conversation `json:"conversations"`
	HasMore           bool           `json:"has_more"`
	ContinuationToken *int           `json:"continuation_token,omitempty"`
}

// Message is a single message within a conversation.
type Message struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageList is a paginated list of messages.
type MessageList struct {
	Messages          []Message `json:"messages"`
	HasMore           bool      `json:"has_more"`
	ContinuationToken *int      `json:"continuation_token,omitempty"`
}

// CreateConversationRequest starts a new conversation with a service.
type CreateConversationRequest struct {
	ServiceID             string `json:"service_id"`
	ServiceVersionSetName string `json:"service_version_set_name,omitempty"`
}

// CreateConversationParams are the query parameters for conversation creation.
type CreateConversationParams struct {
	// ResponseFormat selects how the agent responds, e.g. "text" or "voice".
	ResponseFormat string
}

func (p *CreateConversationParams) values() url.Values {
	if p == nil {
		return nil
	}
	v := url.Values{}
	if p.ResponseFormat != "" {
		v.Set("response_format", p.ResponseFormat)
	}
	return v
}

// InteractParams are the query parameters for an interaction.
type InteractParams struct {
	// RequestFormat is the format of the submitted message, e.g. "text".
	RequestFormat string
	// ResponseFormat selects how the agent responds, e.g. "text" or "voice".
	ResponseFormat string
}

func (p *InteractParams) values() url.Values {
	if p == nil {
		return nil
	}
	v := url.Values{}
	if p.RequestFormat != "" {
		v.Set("request_format", p.RequestFormat)
	}
	if p.ResponseFormat != "" {
		v.Set("response_format", p.ResponseFormat)
	}
	return v
}

// InteractRequest is a user message submitted to a conversation.
type InteractRequest struct {
	Text string `json:"text"`
}

// ListConversationsParams filter and paginate conversation listings.
type ListConversationsParams struct {
	ServiceID         string
	Limit             int
	ContinuationToken int
}

func (p *ListConversationsParams) values() url.Values {
	if p == nil {
		return nil
	}
	v := url.Values{}
	if p.ServiceID != "" {
		v.Set("service_id", p.ServiceID)
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.ContinuationToken > 0 {
		v.Set("continuation_token", strconv.Itoa(p.ContinuationToken))
	}
	return v
}

// ListMessagesParams paginate message listings.
type ListMessagesParams struct {
	Limit             int
	ContinuationToken int
	// SortOrder is "asc" or "desc" by message creation time.
	SortOrder string
}

func (p *ListMessagesParams) values() url.Values {
	if p == nil {
		return nil
	}
	v := url.Values{}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.ContinuationToken > 0 {
		v.Set("continuation_token", strconv.Itoa(p.ContinuationToken))
	}
	if p.SortOrder != "" {
		v.Set("sort_order", p.SortOrder)
	}
	return v
}

// RecommendedResponses are suggested user replies for an interaction.
type RecommendedResponses struct {
	Responses []string `json:"recommended_responses"`
}

// InteractionInsights describe how the agent handled an interaction.
type InteractionInsights struct {
	InteractionID string   `json:"interaction_id"`
	CurrentState  string   `json:"current_state,omitempty"`
	Reflections   []string `json:"reflections,omitempty"`
}

// MessageSource points at the downloadable source of a message, such as
// recorded audio. The URL is pre-signed and expires.
type MessageSource struct {
	URL         string    `json:"url"`
	ContentType string    `json:"content_type,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}

// ConversationStarterRequest asks a service for conversation openers.
type ConversationStarterRequest struct {
	ServiceID string `json:"service_id"`
}

// ConversationStarters are generated conversation openers.
type ConversationStarters struct {
	Starters []string `json:"conversation_starters"`
}

// Organization describes the organization the client is scoped to.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Agent is a configured agent within an organization.
type Agent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AgentList is a paginated list of agents.
type AgentList struct {
	Agents            []Agent `json:"agents"`
	HasMore           bool    `json:"has_more"`
	ContinuationToken *int    `json:"continuation_token,omitempty"`
}

// AgentVersion is a published version of an agent.
type AgentVersion struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// AgentVersionList is a paginated list of agent versions.
type AgentVersionList struct {
	Versions          []AgentVersion `json:"versions"`
	HasMore           bool           `json:"has_more"`
	ContinuationToken *int           `json:"continuation_token,omitempty"`
}

// ListAgentsParams paginate agent listings.
type ListAgentsParams struct {
	Limit             int
	ContinuationToken int
}

func (p *ListAgentsParams) values() url.Values {
	if p == nil {
		return nil
	}
	v := url.Values{}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.ContinuationToken > 0 {
		v.Set("continuation_token", strconv.Itoa(p.ContinuationToken))
	}
	return v
}

// Role is an organization role.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoleList is the set of roles in the organization.
type RoleList struct {
	Roles []Role `json:"roles"`
}

// CreateRoleRequest creates a new organization role.
type CreateRoleRequest struct {
	Name string `json:"name"`
}

// Service is a conversational service exposed by the organization.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AgentID     string `json:"agent_id,omitempty"`
}

// ServiceList is the set of services in the organization.
type ServiceList struct {
	Services []Service `json:"services"`
	HasMore  bool      `json:"has_more"`
}

// User is a member of the organization.
type User struct {
	ID        string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	RoleName  string `json:"role_name,omitempty"`
}

// UserList is a paginated list of users.
type UserList struct {
	Users             []User `json:"users"`
	HasMore           bool   `json:"has_more"`
	ContinuationToken *int   `json:"continuation_token,omitempty"`
}

// ListUsersParams filter and paginate user listings.
type ListUsersParams struct {
	Email             string
	Limit             int
	ContinuationToken int
}

func (p *ListUsersParams) values() url.Values {
	if p == nil {
		return nil
	}
	v := url.Values{}
	if p.Email != "" {
		v.Set("email", p.Email)
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.ContinuationToken > 0 {
		v.Set("continuation_token", strconv.Itoa(p.ContinuationToken))
	}
	return v
}

// CreateUserRequest invites a new user into the organization.
type CreateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	RoleName  string `json:"role_name"`
}

// CreatedUser is the server's acknowledgement of a user invitation.
type CreatedUser struct {
	ID string `json:"user_id"`
}

// UpdateUserRequest changes a user's profile fields. Nil fields are
// left unchanged.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	RoleName  *string `json:"role_name,omitempty"`
}
