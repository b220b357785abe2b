package graphstore

import (
	"context"
	"net/http"
	"net/url"

	"github.com/DanBrus/IB-frontend/application/ports"
	"github.com/DanBrus/IB-frontend/domain/core/aggregates"
	"github.com/DanBrus/IB-frontend/domain/versioning"
	"github.com/DanBrus/IB-frontend/infrastructure/remote"
	"github.com/DanBrus/IB-frontend/pkg/api"
)

// DefaultBaseURL is used when no graph service URL is configured
const DefaultBaseURL = "http://localhost:8001"

// Client talks to the graph service
type Client struct {
	remote *remote.Client
}

var _ ports.GraphStore = (*Client)(nil)

// NewClient creates a graph service client
func NewClient(rc *remote.Client) *Client {
	return &Client{remote: rc}
}

// GetBoard fetches GET /graph/board?version=
func (c *Client) GetBoard(ctx context.Context, version string) (*aggregates.Graph, error) {
	var board api.Board
	query := url.Values{"version": []string{version}}
	if err := c.remote.GetJSON(ctx, "get_board", "/graph/board", query, &board); err != nil {
		return nil, err
	}
	return board.ToDomain(), nil
}

// PutBoard overwrites the board with PUT /graph/board
func (c *Client) PutBoard(ctx context.Context, version string, graph *aggregates.Graph) error {
	board := api.BoardFromDomain(graph)
	body := api.PutBoardRequest{
		Version: version,
		Nodes:   board.Nodes,
		Edges:   board.Edges,
	}
	return c.remote.SendJSON(ctx, "put_board", http.MethodPut, "/graph/board", body, nil)
}

// ListVersions fetches GET /graph/versions
func (c *Client) ListVersions(ctx context.Context) ([]versioning.Version, error) {
	var versions []api.Version
	if err := c.remote.GetJSON(ctx, "list_versions", "/graph/versions", nil, &versions); err != nil {
		return nil, err
	}
	return api.VersionsToDomain(versions), nil
}

// ActiveVersion fetches GET /graph/active_version
func (c *Client) ActiveVersion(ctx context.Context) (string, error) {
	var active api.ActiveVersion
	if err := c.remote.GetJSON(ctx, "active_version", "/graph/active_version", nil, &active); err != nil {
		return "", err
	}
	return active.Version, nil
}

// CreateVersion posts to /graph/versions
func (c *Client) CreateVersion(ctx context.Context, version versioning.Version) error {
	return c.remote.SendJSON(ctx, "create_version", http.MethodPost, "/graph/versions", api.VersionFromDomain(version), nil)
}

// DeleteVersion posts to /graph/versions/delete
func (c *Client) DeleteVersion(ctx context.Context, version string) error {
	body := api.DeleteVersionRequest{Version: version}
	return c.remote.SendJSON(ctx, "delete_version", http.MethodPost, "/graph/versions/delete", body, nil)
}
