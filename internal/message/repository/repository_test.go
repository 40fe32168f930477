package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/catalog-service/internal/message"
	"github.com/fekuna/catalog-service/internal/message/dto"
	"github.com/fekuna/catalog-service/internal/model"
	"github.com/fekuna/catalog-service/internal/schema"
	"github.com/fekuna/catalog-service/pkg/database/sqlite"
)

func repositories(t *testing.T) map[string]message.Repository {
	t.Helper()
	db, err := sqlite.NewSQLite(&sqlite.Config{Path: filepath.Join(t.TempDir(), "m.sqlite"), MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = schema.Ensure(context.Background(), db)
	require.NoError(t, err)

	return map[string]message.Repository{
		"sqlite": NewSQLiteRepository(db),
		"memory": NewMemoryRepository(),
	}
}

func listIDs(t *testing.T, repo message.Repository, status string) []string {
	t.Helper()
	msgs, err := repo.List(context.Background(), status)
	require.NoError(t, err)
	ids := make([]string, len(msgs))
	for i := range msgs {
		ids[i] = msgs[i].ID
	}
	return ids
}

func TestRepositories(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
			company := "Acme"

			require.NoError(t, repo.Create(ctx, &model.Message{ID: "m1", Name: "A", Email: "a@x.io", Body: "hi", CreatedAt: base}))
			require.NoError(t, repo.Create(ctx, &model.Message{ID: "m2", Name: "B", Email: "b@x.io", Company: &company, Body: "yo", CreatedAt: base.Add(time.Hour)}))

			assert.Equal(t, []string{"m2", "m1"}, listIDs(t, repo, dto.StatusAll))
			assert.Empty(t, listIDs(t, repo, dto.StatusRead))

			require.NoError(t, repo.SetRead(ctx, "m1", true))
			assert.Equal(t, []string{"m1"}, listIDs(t, repo, dto.StatusRead))
			assert.Equal(t, []string{"m2"}, listIDs(t, repo, dto.StatusUnread))

			msgs, err := repo.List(ctx, dto.StatusUnread)
			require.NoError(t, err)
			require.NotNil(t, msgs[0].Company)
			assert.Equal(t, "Acme", *msgs[0].Company)
			assert.True(t, base.Add(time.Hour).Equal(msgs[0].CreatedAt))

			assert.ErrorIs(t, repo.SetRead(ctx, "missing", true), message.ErrNotFound)
			assert.ErrorIs(t, repo.Delete(ctx, "missing"), message.ErrNotFound)

			require.NoError(t, repo.Delete(ctx, "m2"))
			assert.Equal(t, []string{"m1"}, listIDs(t, repo, dto.StatusAll))
		})
	}
}
