package amigo

import (
	"context"
	"net/http"
	"net/url"
)

// UserResource provides access to user management operations.
type UserResource struct {
	client *Client
}

// List returns the organization's users.
func (r *UserResource) List(ctx context.Context, params *ListUsersParams) (*UserList, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}
	var out UserList
	path := r.client.apiClient.OrgPath("user/")
	if err := r.client.apiClient.Do(ctx, http.MethodGet, path, params.values(), nil, &out); err != nil {
		return nil, wrapError(err)
	}
	return &out, nil
}

// Create invites a new user into the organization and returns the
// assigned user ID.
func (r *UserResource) Create(ctx context.Context, req *CreateUserRequest) (*CreatedUser, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}
	var out CreatedUser
	path := r.client.apiClient.OrgPath("user/")
	if err := r.client.apiClient.Do(ctx, http.MethodPost, path, nil, req, &out); err != nil {
		return nil, wrapError(err)
	}
	return &out, nil
}

// Update changes a user's profile fields.
func (r *UserResource) Update(ctx context.Context, userID string, req *UpdateUserRequest) (*User, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}
	var out User
	path := r.client.apiClient.OrgPath("user/" + url.PathEscape(userID))
	if err := r.client.apiClient.Do(ctx, http.MethodPut, path, nil, req, &out); err != nil {
		return nil, wrapError(err)
	}
	return &out, nil
}

// Delete removes a user from the organization.
func (r *UserResource) Delete(ctx context.Context, userID string) error {
	if err := r.client.checkClosed(); err != nil {
		return err
	}
	path := r.client.apiClient.OrgPath("user/" + url.PathEscape(userID))
	return wrapError(r.client.apiClient.Do(ctx, http.MethodDelete, path, nil, nil, nil))
}
