package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/DanBrus/IB-frontend/application/ports"
	"github.com/DanBrus/IB-frontend/domain/core/aggregates"
	"github.com/DanBrus/IB-frontend/domain/versioning"
	"github.com/DanBrus/IB-frontend/pkg/errors"
)

// DefaultVersion is the version a fresh store starts with and marks active
var DefaultVersion = versioning.Version{ID: "v1", Name: "Main", Description: "Initial version"}

// BoardStore provides an in-memory implementation of BoardRepository.
// Boards are copied on the way in and out.
type BoardStore struct {
	mu       sync.RWMutex
	versions []versioning.Version
	boards   map[string]*aggregates.Graph
	active   string
}

var _ ports.BoardRepository = (*BoardStore)(nil)

// NewBoardStore creates a store holding one empty, active version
func NewBoardStore(seed versioning.Version) *BoardStore {
	return &BoardStore{
		versions: []versioning.Version{seed},
		boards:   map[string]*aggregates.Graph{seed.ID: aggregates.NewGraph()},
		active:   seed.ID,
	}
}

// GetBoard returns a copy of the board stored for version
func (s *BoardStore) GetBoard(ctx context.Context, version string) (*aggregates.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	board, exists := s.boards[version]
	if !exists {
		return nil, errors.NewNotFoundError(fmt.Sprintf("version %q", version))
	}
	return board.Clone(), nil
}

// SaveBoard replaces the board stored for version
func (s *BoardStore) SaveBoard(ctx context.Context, version string, graph *aggregates.Graph) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.boards[version]; !exists {
		return errors.NewNotFoundError(fmt.Sprintf("version %q", version))
	}
	if graph == nil {
		graph = aggregates.NewGraph()
	}
	s.boards[version] = graph.Clone()
	return nil
}

// ListVersions returns versions in creation order
func (s *BoardStore) ListVersions(ctx context.Context) ([]versioning.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]versioning.Version, len(s.versions))
	copy(out, s.versions)
	return out, nil
}

// ActiveVersion returns the active version id
func (s *BoardStore) ActiveVersion(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, nil
}

// SetActiveVersion marks an existing version active
func (s *BoardStore) SetActiveVersion(ctx context.Context, version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.boards[version]; !exists {
		return errors.NewNotFoundError(fmt.Sprintf("version %q", version))
	}
	s.active = version
	return nil
}

// CreateVersion adds a version with an empty board
func (s *BoardStore) CreateVersion(ctx context.Context, version versioning.Version) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.boards[version.ID]; exists {
		return errors.NewConflictError(fmt.Sprintf("version %q already exists", version.ID))
	}
	s.versions = append(s.versions, version)
	s.boards[version.ID] = aggregates.NewGraph()
	return nil
}

// DeleteVersion removes a version and its board. The active version cannot
// be deleted.
func (s *BoardStore) DeleteVersion(ctx context.Context, version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.boards[version]; !exists {
		return errors.NewNotFoundError(fmt.Sprintf("version %q", version))
	}
	if version == s.active {
		return errors.NewConflictError("cannot delete the active version").
			WithCode(errors.CodeActiveVersion).
			WithDetails(map[string]interface{}{"version": version})
	}

	delete(s.boards, version)
	for i, v := range s.versions {
		if v.ID == version {
			s.versions = append(s.versions[:i], s.versions[i+1:]...)
			break
		}
	}
	return nil
}
