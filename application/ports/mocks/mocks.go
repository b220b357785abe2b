// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"

	"github.com/DanBrus/IB-frontend/application/ports"
	"github.com/DanBrus/IB-frontend/domain/core/aggregates"
	"github.com/DanBrus/IB-frontend/domain/versioning"
	"github.com/stretchr/testify/mock"
)

type MockGraphStore struct {
	mock.Mock
}

func (m *MockGraphStore) GetBoard(ctx context.Context, version string) (*aggregates.Graph, error) {
	args := m.Called(ctx, version)
	if g, ok := args.Get(0).(*aggregates.Graph); ok {
		return g.Clone(), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGraphStore) PutBoard(ctx context.Context, version string, graph *aggregates.Graph) error {
	args := m.Called(ctx, version, graph)
	return args.Error(0)
}

func (m *MockGraphStore) ListVersions(ctx context.Context) ([]versioning.Version, error) {
	args := m.Called(ctx)
	versions, _ := args.Get(0).([]versioning.Version)
	return versions, args.Error(1)
}

func (m *MockGraphStore) ActiveVersion(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGraphStore) CreateVersion(ctx context.Context, version versioning.Version) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

func (m *MockGraphStore) DeleteVersion(ctx context.Context, version string) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

type MockImageUploader struct {
	mock.Mock
}

func (m *MockImageUploader) Upload(ctx context.Context, filename string, data []byte) (ports.UploadResult, error) {
	args := m.Called(ctx, filename, data)
	result, _ := args.Get(0).(ports.UploadResult)
	return result, args.Error(1)
}

func (m *MockImageUploader) ImageURL(id string) string {
	if id == "" {
		return ""
	}
	return "http://files.test/res/" + id
}
