package sqlstore_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"modelregistry/internal/infra/persistence/rows"
	"modelregistry/internal/infra/persistence/sqlite"
	"modelregistry/internal/infra/persistence/sqlstore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	ctx := context.Background()
	store, err := sqlite.Open(ctx, sqlite.MemoryPath, sqlstore.WithClock(func() time.Time { return epoch.Add(time.Hour) }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	_, err = store.Migrate(ctx)
	require.NoError(t, err)
	return store
}

func newModel(name string, size int64, created time.Time) rows.Model {
	return rows.Model{
		ID:           uuid.NewString(),
		Name:         name,
		DisplayName:  name,
		Version:      "1.0",
		ModelType:    "Chat",
		SizeCategory: "Small",
		FileSize:     size,
		Provider:     "meta",
		Tags:         `[]`,
		Languages:    `["en"]`,
		Config:       `{}`,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func seed(t *testing.T, s *sqlstore.Store, models ...rows.Model) {
	t.Helper()
	for _, m := range models {
		_, err := s.Models().Create(context.Background(), m)
		require.NoError(t, err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "registry.db")

	store, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	applied, err := store.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, applied)
	require.NoError(t, store.Close())

	store, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	applied, err = store.Migrate(ctx)
	require.NoError(t, err)
	assert.Zero(t, applied)

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), version)
	require.NoError(t, store.VerifySchema(ctx))
}

func TestModelCreateGetRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	desc := "Meta's chat model"
	rating := 4.5
	m := newModel("llama-2-7b", 7_000_000_000, epoch)
	m.Description = &desc
	m.Rating = &rating
	m.IsOfficial = true
	m.Tags = `["chat","llm"]`
	seed(t, s, m)

	got, err := s.Models().Get(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, m, *got)

	byName, err := s.Models().GetByName(ctx, "llama-2-7b")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, m.ID, byName.ID)

	missing, err := s.Models().Get(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestModelDuplicateNameIsConflict(t *testing.T) {
	s := newStore(t)
	seed(t, s, newModel("mistral-7b", 1, epoch))

	_, err := s.Models().Create(context.Background(), newModel("mistral-7b", 2, epoch))
	require.Error(t, err)
	assert.ErrorIs(t, err, sqlstore.ErrConflict)
	var se *sqlstore.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "models_create", se.Op)
	assert.Equal(t, "models", se.Table)
}

func TestModelUpdateStampsUpdatedAtAndKeepsCreatedAt(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	m := newModel("phi-2", 1, epoch)
	seed(t, s, m)

	m.DisplayName = "Phi 2"
	m.CreatedAt = epoch.Add(48 * time.Hour)
	updated, err := s.Models().Update(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, epoch.Add(time.Hour), updated.UpdatedAt)

	got, err := s.Models().Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Phi 2", got.DisplayName)
	assert.Equal(t, epoch, got.CreatedAt)
	assert.Equal(t, epoch.Add(time.Hour), got.UpdatedAt)

	ghost := newModel("ghost", 1, epoch)
	_, err = s.Models().Update(ctx, ghost)
	assert.NoError(t, err)
}

func TestModelDeleteAndDownloadCount(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	m := newModel("gemma-2b", 1, epoch)
	seed(t, s, m)

	ok, err := s.Models().IncrementDownloadCount(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	got, err := s.Models().Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.DownloadCount)

	ok, err = s.Models().Delete(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Models().Delete(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.Models().IncrementDownloadCount(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSearchIsCaseInsensitiveAndLiteral(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	desc := "100% open weights"
	llama := newModel("Llama-3-8B", 1, epoch)
	other := newModel("qwen", 1, epoch.Add(time.Minute))
	other.Description = &desc
	seed(t, s, llama, other)

	for _, q := range []string{"llama", "LLAMA", "lLaMa-3"} {
		found, err := s.Models().Search(ctx, q, 0)
		require.NoError(t, err)
		require.Len(t, found, 1, q)
		assert.Equal(t, llama.ID, found[0].ID)
	}

	found, err := s.Models().Search(ctx, "100%", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, other.ID, found[0].ID)

	found, err = s.Models().Search(ctx, "%", 0)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = s.Models().Search(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, other.ID, found[0].ID)
}

func TestSearchFoldsNonASCIICase(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	desc := "Modèle ÜBERSETZUNG"
	writer := newModel("Écrivain-chat", 1, epoch)
	greek := newModel("ΣΟΦΙΑ", 1, epoch.Add(time.Minute))
	greek.Description = &desc
	seed(t, s, writer, greek)

	for _, q := range []string{"Écrivain", "écrivain", "ÉCRIVAIN", "crivain"} {
		found, err := s.Models().Search(ctx, q, 0)
		require.NoError(t, err)
		require.Len(t, found, 1, q)
		assert.Equal(t, writer.ID, found[0].ID, q)
	}

	found, err := s.Models().Search(ctx, "σοφια", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, greek.ID, found[0].ID)

	page, err := s.Models().ListPage(ctx, sqlstore.ModelQuery{Search: "übersetzung"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, []string{"ΣΟΦΙΑ"}, names(page.Items))
}

func TestListFiltersAndOrdering(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	a := newModel("alpha", 3, epoch)
	a.ModelType = "Embedding"
	b := newModel("bravo", 1, epoch.Add(time.Minute))
	b.IsOfficial = true
	b.Provider = "mistral"
	c := newModel("charlie", 2, epoch.Add(2*time.Minute))
	c.IsOfficial = true
	seed(t, s, a, b, c)

	byType, err := s.Models().ListByType(ctx, "Chat")
	require.NoError(t, err)
	assert.Equal(t, []string{"charlie", "bravo"}, names(byType))

	byProvider, err := s.Models().ListByProvider(ctx, "mistral")
	require.NoError(t, err)
	assert.Equal(t, []string{"bravo"}, names(byProvider))

	official, err := s.Models().ListOfficial(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"charlie", "bravo"}, names(official))

	all, err := s.Models().All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"charlie", "bravo", "alpha"}, names(all))

	n, err := s.Models().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestListPage(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	var all []rows.Model
	for i := 0; i < 5; i++ {
		m := newModel(fmt.Sprintf("model-%d", i), int64(10-i), epoch.Add(time.Duration(i)*time.Minute))
		if i%2 == 0 {
			m.Tags = `["chat"]`
		} else {
			m.Tags = `["vision","code"]`
		}
		all = append(all, m)
	}
	seed(t, s, all...)

	page, err := s.Models().ListPage(ctx, sqlstore.ModelQuery{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, []string{"model-3", "model-2"}, names(page.Items))

	page, err = s.Models().ListPage(ctx, sqlstore.ModelQuery{Tags: []string{"code", "audio"}, SortBy: sqlstore.SortName, Ascending: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, []string{"model-1", "model-3"}, names(page.Items))

	after := epoch.Add(2 * time.Minute)
	page, err = s.Models().ListPage(ctx, sqlstore.ModelQuery{CreatedAfter: &after, SortBy: sqlstore.SortFileSize, Ascending: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"model-4", "model-3", "model-2"}, names(page.Items))

	official := true
	page, err = s.Models().ListPage(ctx, sqlstore.ModelQuery{Official: &official, Search: "MODEL"})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Empty(t, page.Items)

	page, err = s.Models().ListPage(ctx, sqlstore.ModelQuery{SortBy: "file_size; DROP TABLE models", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"model-4"}, names(page.Items))
}

func TestInstallJoinAndUsage(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	a := newModel("alpha", 1, epoch)
	b := newModel("bravo", 1, epoch.Add(time.Minute))
	seed(t, s, a, b)

	port := int32(8080)
	inst := rows.InstalledModel{
		ID: uuid.NewString(), ModelID: a.ID, InstallPath: "/models/alpha", InstalledAt: epoch,
		Status: "Stopped", Port: &port, CreatedAt: epoch, UpdatedAt: epoch,
	}
	_, err := s.Installed().Create(ctx, inst)
	require.NoError(t, err)

	again := inst
	again.ID = uuid.NewString()
	_, err = s.Installed().Create(ctx, again)
	assert.True(t, sqlstore.IsConflict(err))

	joined, err := s.Models().WithInstallInfo(ctx)
	require.NoError(t, err)
	require.Len(t, joined, 2)
	assert.Equal(t, b.ID, joined[0].Model.ID)
	assert.Nil(t, joined[0].Installed)
	require.NotNil(t, joined[1].Installed)
	assert.Equal(t, inst, *joined[1].Installed)

	installed, err := s.Models().Installed(ctx)
	require.NoError(t, err)
	require.Len(t, installed, 1)
	assert.Equal(t, a.ID, installed[0].Model.ID)

	ok, err := s.Installed().MarkUsed(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	got, err := s.Installed().ByModelID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.UsageCount)
	require.NotNil(t, got.LastUsed)
	assert.Equal(t, epoch.Add(time.Hour), *got.LastUsed)

	stopped, err := s.Installed().ByStatus(ctx, "Stopped")
	require.NoError(t, err)
	assert.Len(t, stopped, 1)

	ok, err = s.Installed().DeleteByModelID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	n, err := s.Installed().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeletingModelCascadesInstallation(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	m := newModel("alpha", 1, epoch)
	seed(t, s, m)
	_, err := s.Installed().Create(ctx, rows.InstalledModel{
		ID: uuid.NewString(), ModelID: m.ID, InstallPath: "/m", InstalledAt: epoch,
		Status: "Stopped", CreatedAt: epoch, UpdatedAt: epoch,
	})
	require.NoError(t, err)

	_, err = s.Models().Delete(ctx, m.ID)
	require.NoError(t, err)
	got, err := s.Installed().ByModelID(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSourceUpsertAndSyncHistory(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	m := newModel("alpha", 1, epoch)
	seed(t, s, m)
	src := rows.Source{
		ID: uuid.NewString(), Name: "hf", URL: "https://huggingface.co", RepoType: "HuggingFace",
		Enabled: true, SyncStatus: "Never", Tags: `[]`, Priority: 10, CreatedAt: epoch, UpdatedAt: epoch,
	}
	_, err := s.Sources().Create(ctx, src)
	require.NoError(t, err)

	listing := rows.RepositoryModel{
		ID: uuid.NewString(), RepositoryID: src.ID, ModelID: m.ID, RepoModelID: "meta/alpha",
		RepoPath: "alpha", DownloadURLs: `[]`, Files: `[]`, Dependencies: `[]`, UsageExamples: `[]`,
		CreatedAt: epoch, UpdatedAt: epoch,
	}
	require.NoError(t, s.Sources().UpsertModel(ctx, listing))
	listing2 := listing
	listing2.ID = uuid.NewString()
	listing2.RepoPath = "alpha-v2"
	require.NoError(t, s.Sources().UpsertModel(ctx, listing2))

	listings, err := s.Sources().Models(ctx, src.ID)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, listing.ID, listings[0].ID)
	assert.Equal(t, "alpha-v2", listings[0].RepoPath)

	done := epoch.Add(5 * time.Minute)
	require.NoError(t, s.Sources().RecordSync(ctx, rows.SyncResult{
		ID: uuid.NewString(), RepositoryID: src.ID, StartedAt: epoch, CompletedAt: &done,
		Status: "Success", ModelsAdded: 1, LogEntries: `[]`,
	}))
	history, err := s.Sources().SyncHistory(ctx, src.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)

	got, err := s.Sources().Get(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, "Success", got.SyncStatus)
	require.NotNil(t, got.LastSync)
	assert.Equal(t, done, *got.LastSync)
}

func TestTaskRetriesUntilExhausted(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	task := rows.Task{
		ID: uuid.NewString(), TaskType: "download", Payload: `{}`, Status: "Pending",
		Priority: 5, CreatedAt: epoch, MaxRetries: 2,
	}
	_, err := s.Tasks().Create(ctx, task)
	require.NoError(t, err)

	pending, err := s.Tasks().Pending(ctx, epoch, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = s.Tasks().Fail(ctx, task.ID, "timeout")
	require.NoError(t, err)
	got, err := s.Tasks().Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pending", got.Status)
	assert.Equal(t, int32(1), got.RetryCount)
	assert.Nil(t, got.CompletedAt)

	_, err = s.Tasks().Fail(ctx, task.ID, "timeout")
	require.NoError(t, err)
	got, err = s.Tasks().Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Failed", got.Status)
	require.NotNil(t, got.CompletedAt)
	require.NotNil(t, got.ErrorMessage)
	assert.Equal(t, "timeout", *got.ErrorMessage)
	assert.Equal(t, epoch.Add(time.Hour), *got.CompletedAt)

	once := rows.Task{
		ID: uuid.NewString(), TaskType: "download", Payload: `{}`, Status: "Pending",
		CreatedAt: epoch, MaxRetries: 1,
	}
	_, err = s.Tasks().Create(ctx, once)
	require.NoError(t, err)
	ok, err := s.Tasks().Fail(ctx, once.ID, "disk full")
	require.NoError(t, err)
	assert.True(t, ok)
	got, err = s.Tasks().Get(ctx, once.ID)
	require.NoError(t, err)
	assert.Equal(t, "Failed", got.Status)
	assert.Equal(t, int32(1), got.RetryCount)

	ok, err = s.Tasks().Fail(ctx, uuid.NewString(), "gone")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionCleanup(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	mk := func(token string, expires time.Time, active bool) rows.UserSession {
		return rows.UserSession{
			ID: uuid.NewString(), UserID: "u1", SessionToken: token, CreatedAt: epoch,
			ExpiresAt: expires, LastAccessed: epoch, IPAddress: "127.0.0.1", IsActive: active,
		}
	}
	for _, sess := range []rows.UserSession{
		mk("expired", epoch.Add(-time.Minute), true),
		mk("inactive", epoch.Add(time.Hour), false),
		mk("live", epoch.Add(time.Hour), true),
	} {
		_, err := s.Sessions().Create(ctx, sess)
		require.NoError(t, err)
	}
	_, err := s.Sessions().Create(ctx, mk("live", epoch.Add(time.Hour), true))
	assert.True(t, sqlstore.IsConflict(err))

	removed, err := s.Sessions().CleanupExpired(ctx, epoch)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	live, err := s.Sessions().ByToken(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, live)
	gone, err := s.Sessions().ByToken(ctx, "expired")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func names(ms []rows.Model) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name
	}
	return out
}
