package ports

import (
	"context"

	"github.com/DanBrus/IB-frontend/domain/core/aggregates"
	"github.com/DanBrus/IB-frontend/domain/versioning"
)

// GraphStore is the remote graph service as seen by the board client.
// Implementations do not cache and do not retry.
type GraphStore interface {
	// GetBoard fetches the graph stored for version
	GetBoard(ctx context.Context, version string) (*aggregates.Graph, error)

	// PutBoard overwrites the graph stored for version
	PutBoard(ctx context.Context, version string, graph *aggregates.Graph) error

	// ListVersions returns every known version
	ListVersions(ctx context.Context) ([]versioning.Version, error)

	// ActiveVersion returns the version the backend currently marks active
	ActiveVersion(ctx context.Context) (string, error)

	// CreateVersion registers a new, empty version
	CreateVersion(ctx context.Context, version versioning.Version) error

	// DeleteVersion removes a version
	DeleteVersion(ctx context.Context, version string) error
}

// UploadResult is the file service's answer to an upload
type UploadResult struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ImageUploader is the remote file service
type ImageUploader interface {
	// Upload stores data and returns its opaque id
	Upload(ctx context.Context, filename string, data []byte) (UploadResult, error)

	// ImageURL builds the display URL for an image id, or "" for no image
	ImageURL(id string) string
}

// BoardRepository stores boards and versions on the service side
type BoardRepository interface {
	GetBoard(ctx context.Context, version string) (*aggregates.Graph, error)
	SaveBoard(ctx context.Context, version string, graph *aggregates.Graph) error
	ListVersions(ctx context.Context) ([]versioning.Version, error)
	ActiveVersion(ctx context.Context) (string, error)
	CreateVersion(ctx context.Context, version versioning.Version) error
	DeleteVersion(ctx context.Context, version string) error
}

// StoredImage is an uploaded file held by the file service
type StoredImage struct {
	ID          string
	ContentType string
	Data        []byte
}

// ImageRepository stores uploaded files on the service side
type ImageRepository interface {
	Save(ctx context.Context, contentType string, data []byte) (string, error)
	Get(ctx context.Context, id string) (*StoredImage, error)
}
