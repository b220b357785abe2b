package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/DanBrus/IB-frontend/application/ports"
	"github.com/DanBrus/IB-frontend/pkg/errors"
	"github.com/google/uuid"
)

// ImageStore provides an in-memory implementation of ImageRepository
type ImageStore struct {
	mu     sync.RWMutex
	images map[string]*ports.StoredImage
}

var _ ports.ImageRepository = (*ImageStore)(nil)

// NewImageStore creates an empty image store
func NewImageStore() *ImageStore {
	return &ImageStore{images: make(map[string]*ports.StoredImage)}
}

// Save stores a copy of data under a new random id
func (s *ImageStore) Save(ctx context.Context, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.NewValidationError("file is empty")
	}

	id := uuid.NewString()
	stored := &ports.StoredImage{
		ID:          id,
		ContentType: contentType,
		Data:        append([]byte(nil), data...),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[id] = stored
	return id, nil
}

// Get returns the image stored under id
func (s *ImageStore) Get(ctx context.Context, id string) (*ports.StoredImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	image, exists := s.images[id]
	if !exists {
		return nil, errors.NewNotFoundError(fmt.Sprintf("image %q", id))
	}
	return image, nil
}
