package filestore

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/DanBrus/IB-frontend/application/ports"
	"github.com/DanBrus/IB-frontend/infrastructure/remote"
	"github.com/DanBrus/IB-frontend/pkg/api"
	"github.com/DanBrus/IB-frontend/pkg/errors"
)

// DefaultBaseURL is used when no file service URL is configured
const DefaultBaseURL = "http://localhost:8081"

// FormField is the multipart field carrying the file
const FormField = "file"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Client uploads node images to the file service
type Client struct {
	remote *remote.Client
}

var _ ports.ImageUploader = (*Client)(nil)

// NewClient creates a file service client
func NewClient(rc *remote.Client) *Client {
	return &Client{remote: rc}
}

// Upload posts data to /res as multipart field "file"
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (ports.UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(FormField), quoteEscaper.Replace(filename)))
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	if err != nil {
		return ports.UploadResult{}, errors.NewInternalError("failed to build upload").WithCause(err)
	}
	if _, err := part.Write(data); err != nil {
		return ports.UploadResult{}, errors.NewInternalError("failed to build upload").WithCause(err)
	}
	if err := writer.Close(); err != nil {
		return ports.UploadResult{}, errors.NewInternalError("failed to build upload").WithCause(err)
	}

	var result api.Upload
	if err := c.remote.SendMultipart(ctx, "upload", "/res", writer.FormDataContentType(), &body, &result); err != nil {
		return ports.UploadResult{}, err
	}
	if result.ID == "" {
		return ports.UploadResult{}, errors.NewExternalError("file", errors.NewValidationError("upload response has no id"))
	}
	if result.URL == "" {
		result.URL = c.ImageURL(result.ID)
	}
	return ports.UploadResult{ID: result.ID, URL: result.URL}, nil
}

// ImageURL builds {base}/res/{id}; an empty id means no image
func (c *Client) ImageURL(id string) string {
	if id == "" {
		return ""
	}
	return c.remote.BaseURL() + "/res/" + url.PathEscape(id)
}
