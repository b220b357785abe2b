package memory

import (
	"context"
	"testing"

	"github.com/DanBrus/IB-frontend/domain/core/valueobjects"
	"github.com/DanBrus/IB-frontend/domain/versioning"
	"github.com/DanBrus/IB-frontend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardStore_SeedsActiveVersion(t *testing.T) {
	store := NewBoardStore(DefaultVersion)
	ctx := context.Background()

	versions, err := store.ListVersions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []versioning.Version{DefaultVersion}, versions)

	active, err := store.ActiveVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v1", active)

	board, err := store.GetBoard(ctx, "v1")
	require.NoError(t, err)
	assert.Zero(t, board.NodeCount())
}

func TestBoardStore_SaveBoardIsolatesCopies(t *testing.T) {
	store := NewBoardStore(DefaultVersion)
	ctx := context.Background()

	board, err := store.GetBoard(ctx, "v1")
	require.NoError(t, err)
	board.AddNode(valueobjects.NewPosition(1, 1))
	require.NoError(t, store.SaveBoard(ctx, "v1", board))

	board.AddNode(valueobjects.NewPosition(2, 2))

	stored, err := store.GetBoard(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.NodeCount())
}

func TestBoardStore_VersionErrors(t *testing.T) {
	v2 := versioning.Version{ID: "v2", Name: "Second", Description: "draft"}

	tests := []struct {
		name  string
		run   func(s *BoardStore) error
		check func(error) bool
		code  string
	}{
		{
			name:  "duplicate version",
			run:   func(s *BoardStore) error { return s.CreateVersion(context.Background(), DefaultVersion) },
			check: errors.IsConflict,
		},
		{
			name:  "delete active version",
			run:   func(s *BoardStore) error { return s.DeleteVersion(context.Background(), "v1") },
			check: errors.IsConflict,
			code:  errors.CodeActiveVersion,
		},
		{
			name:  "delete unknown version",
			run:   func(s *BoardStore) error { return s.DeleteVersion(context.Background(), "nope") },
			check: errors.IsNotFound,
		},
		{
			name: "save unknown version",
			run: func(s *BoardStore) error {
				return s.SaveBoard(context.Background(), "nope", nil)
			},
			check: errors.IsNotFound,
		},
		{
			name:  "activate unknown version",
			run:   func(s *BoardStore) error { return s.SetActiveVersion(context.Background(), "nope") },
			check: errors.IsNotFound,
		},
		{
			name: "create then delete",
			run: func(s *BoardStore) error {
				if err := s.CreateVersion(context.Background(), v2); err != nil {
					return err
				}
				return s.DeleteVersion(context.Background(), "v2")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(NewBoardStore(DefaultVersion))
			if tt.check == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
			if tt.code != "" {
				assert.True(t, errors.HasCode(err, tt.code))
			}
		})
	}
}

func TestBoardStore_DeleteKeepsOrder(t *testing.T) {
	store := NewBoardStore(DefaultVersion)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.CreateVersion(ctx, versioning.Version{ID: id}))
	}

	require.NoError(t, store.DeleteVersion(ctx, "b"))

	versions, _ := store.ListVersions(ctx)
	ids := make([]string, 0, len(versions))
	for _, v := range versions {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"v1", "a", "c"}, ids)
}

func TestImageStore(t *testing.T) {
	store := NewImageStore()
	ctx := context.Background()

	data := []byte{1, 2, 3}
	id, err := store.Save(ctx, "image/png", data)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	data[0] = 9
	image, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, image.Data)
	assert.Equal(t, "image/png", image.ContentType)

	_, err = store.Get(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))

	_, err = store.Save(ctx, "image/png", nil)
	assert.True(t, errors.IsValidation(err))
}
