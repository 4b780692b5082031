package amigo

import (
	"context"
	"net/http"
)

// ServiceResource provides access to service operations.
type ServiceResource struct {
	client *Client
}

// List returns the services available to the organization.
func (r *ServiceResource) List(ctx context.Context) (*ServiceList, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}
	var out ServiceList
	path := r.client.apiClient.OrgPath("service/")
	if err := r.client.apiClient.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, wrapError(err)
	}
	return &out, nil
}
