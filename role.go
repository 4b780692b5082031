package amigo

import (
	"context"
	"net/http"
)

// RoleResource provides access to role operations.
type RoleResource struct {
	client *Client
}

// List returns the organization's roles.
func (r *RoleResource) List(ctx context.Context) (*RoleList, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}
	var out RoleList
	path := r.client.apiClient.OrgPath("role/")
	if err := r.client.apiClient.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, wrapError(err)
	}
	return &out, nil
}

// Create adds a new role to the organization.
func (r *RoleResource) Create(ctx context.Context, req *CreateRoleRequest) (*Role, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}
	var out Role
	path := r.client.apiClient.OrgPath("role/")
	if err := r.client.apiClient.Do(ctx, http.MethodPost, path, nil, req, &out); err != nil {
		return nil, wrapError(err)
	}
	return &out, nil
}
