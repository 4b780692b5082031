package amigo

import (
	"context"
	"net/http"
	"net/url"
)

// OrganizationResource provides access to organization operations.
type OrganizationResource struct {
	client *Client
}

// Get returns the organization the client is scoped to.
func (r *OrganizationResource) Get(ctx context.Context) (*Organization, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}
	var out Organization
	path := r.client.apiClient.OrgPath("organization/")
	if err := r.client.apiClient.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, wrapError(err)
	}
	return &out, nil
}

// Agents returns the organization's agents.
func (r *OrganizationResource) Agents(ctx context.Context, params *ListAgentsParams) (*AgentList, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}
	var out AgentList
	path := r.client.apiClient.OrgPath("organization/agent")
	if err := r.client.apiClient.Do(ctx, http.MethodGet, path, params.values(), nil, &out); err != nil {
		return nil, wrapError(err)
	}
	return &out, nil
}

// AgentVersions returns the published versions of an agent.
func (r *OrganizationResource) AgentVersions(ctx context.Context, agentID string, params *ListAgentsParams) (*AgentVersionList, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}
	var out AgentVersionList
	path := r.client.apiClient.OrgPath("organization/agent/" + url.PathEscape(agentID) + "/version")
	if err := r.client.apiClient.Do(ctx, http.MethodGet, path, params.values(), nil, &out); err != nil {
		return nil, wrapError(err)
	}
	return &out, nil
}
