package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelregistry/internal/infra/persistence/rows"
	"modelregistry/internal/infra/persistence/sqlstore"
)

func TestAvailableTracksInstallFlag(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	m := newModel("alpha", 1, epoch)
	seed(t, s, m)

	ok, err := s.Available().SetInstalled(ctx, m.ID, true)
	require.NoError(t, err)
	assert.False(t, ok, "no published row yet")

	av := rows.AvailableModel{
		ID: uuid.NewString(), ModelID: m.ID, PublishedAt: epoch, LastUpdated: epoch,
		SystemRequirements: `{"min_ram_gb":8}`,
	}
	_, err = s.Available().Create(ctx, av)
	require.NoError(t, err)

	ok, err = s.Available().SetInstalled(ctx, m.ID, true)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.Available().ByModelID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsInstalled)
	assert.Equal(t, epoch.Add(time.Hour), got.LastUpdated)
	assert.JSONEq(t, `{"min_ram_gb":8}`, got.SystemRequirements)

	all, err := s.Available().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	dup := av
	dup.ID = uuid.NewString()
	_, err = s.Available().Create(ctx, dup)
	assert.True(t, sqlstore.IsConflict(err))
}

func TestInstallAndUninstallAreAtomic(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	m := newModel("alpha", 1, epoch)
	seed(t, s, m)
	_, err := s.Available().Create(ctx, rows.AvailableModel{
		ID: uuid.NewString(), ModelID: m.ID, PublishedAt: epoch, LastUpdated: epoch, SystemRequirements: `{}`,
	})
	require.NoError(t, err)
	inst := rows.InstalledModel{
		ID: uuid.NewString(), ModelID: m.ID, InstallPath: "/models/alpha", InstalledAt: epoch,
		Status: "Stopped", CreatedAt: epoch, UpdatedAt: epoch,
	}

	_, err = s.DB().ExecContext(ctx, "ALTER TABLE available_models RENAME TO available_models_parked")
	require.NoError(t, err)
	_, err = s.Installed().Install(ctx, inst)
	require.Error(t, err)
	var se *sqlstore.StorageError
	require.ErrorAs(t, err, &se)
	got, err := s.Installed().ByModelID(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "failed flag update must not leave an installation behind")

	_, err = s.DB().ExecContext(ctx, "ALTER TABLE available_models_parked RENAME TO available_models")
	require.NoError(t, err)
	_, err = s.Installed().Install(ctx, inst)
	require.NoError(t, err)
	av, err := s.Available().ByModelID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, av)
	assert.True(t, av.IsInstalled)

	_, err = s.Installed().Install(ctx, inst)
	assert.True(t, sqlstore.IsConflict(err))

	_, err = s.DB().ExecContext(ctx, "ALTER TABLE available_models RENAME TO available_models_parked")
	require.NoError(t, err)
	_, err = s.Installed().Uninstall(ctx, m.ID)
	require.Error(t, err)
	got, err = s.Installed().ByModelID(ctx, m.ID)
	require.NoError(t, err)
	assert.NotNil(t, got, "failed flag update must keep the installation")

	_, err = s.DB().ExecContext(ctx, "ALTER TABLE available_models_parked RENAME TO available_models")
	require.NoError(t, err)
	removed, err := s.Installed().Uninstall(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	av, err = s.Available().ByModelID(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, av.IsInstalled)

	removed, err = s.Installed().Uninstall(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestInstalledUpdateAndDelete(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	m := newModel("alpha", 1, epoch)
	seed(t, s, m)
	inst := rows.InstalledModel{
		ID: uuid.NewString(), ModelID: m.ID, InstallPath: "/models/alpha", InstalledAt: epoch,
		Status: "Stopped", CreatedAt: epoch, UpdatedAt: epoch,
	}
	_, err := s.Installed().Create(ctx, inst)
	require.NoError(t, err)

	pid := int32(4242)
	inst.Status = "Running"
	inst.ProcessID = &pid
	inst.CreatedAt = epoch.Add(-24 * time.Hour)
	updated, err := s.Installed().Update(ctx, inst)
	require.NoError(t, err)
	assert.Equal(t, epoch.Add(time.Hour), updated.UpdatedAt)

	got, err := s.Installed().Get(ctx, inst.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Running", got.Status)
	require.NotNil(t, got.ProcessID)
	assert.Equal(t, pid, *got.ProcessID)
	assert.Equal(t, epoch, got.CreatedAt, "created_at is not rewritten")

	all, err := s.Installed().All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	ok, err := s.Installed().Delete(ctx, inst.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Installed().Delete(ctx, inst.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.Installed().MarkUsed(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRuntimeLifecycle(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	m := newModel("alpha", 1, epoch)
	seed(t, s, m)

	temp := 0.7
	cfg := rows.RuntimeConfig{
		ID: uuid.NewString(), Name: "default", Temperature: &temp, StopSequences: `["</s>"]`,
		GPUDeviceIDs: `[0]`, EnableStreaming: true, CustomParams: `{}`, CreatedAt: epoch, UpdatedAt: epoch,
	}
	_, err := s.Runtimes().CreateConfig(ctx, cfg)
	require.NoError(t, err)
	gotCfg, err := s.Runtimes().Config(ctx, cfg.ID)
	require.NoError(t, err)
	require.NotNil(t, gotCfg)
	require.NotNil(t, gotCfg.Temperature)
	assert.InDelta(t, 0.7, *gotCfg.Temperature, 1e-9)
	assert.Nil(t, gotCfg.TopK)
	cfgs, err := s.Runtimes().Configs(ctx)
	require.NoError(t, err)
	assert.Len(t, cfgs, 1)

	rt := rows.ModelRuntime{
		ID: uuid.NewString(), ModelID: m.ID, RuntimeConfigID: cfg.ID, Name: "alpha-8080", Port: 8080,
		Status: "Starting", HealthEndpoint: "/health", APIEndpoint: "/v1", Environment: `{}`,
		CreatedAt: epoch, UpdatedAt: epoch,
	}
	_, err = s.Runtimes().Create(ctx, rt)
	require.NoError(t, err)

	clash := rt
	clash.ID = uuid.NewString()
	_, err = s.Runtimes().Create(ctx, clash)
	assert.True(t, sqlstore.IsConflict(err), "model and port pair is unique")

	started := epoch.Add(time.Minute)
	rt.Status = "Running"
	rt.StartedAt = &started
	_, err = s.Runtimes().Update(ctx, rt)
	require.NoError(t, err)
	byModel, err := s.Runtimes().ByModelID(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, byModel, 1)
	assert.Equal(t, "Running", byModel[0].Status)
	require.NotNil(t, byModel[0].StartedAt)
	assert.Equal(t, started, *byModel[0].StartedAt)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Runtimes().RecordMetrics(ctx, rows.RuntimeMetrics{
			ID: uuid.NewString(), RuntimeID: rt.ID, Timestamp: epoch.Add(time.Duration(i) * time.Minute),
			CPUUsagePercent: float64(10 * i), MemoryUsageMB: 512,
		}))
	}
	history, err := s.Runtimes().MetricsHistory(ctx, rt.ID, epoch, epoch.Add(2*time.Minute))
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, epoch, history[0].Timestamp)
	assert.Nil(t, history[0].GPUUsagePercent)

	details := `{"exit_code":1}`
	require.NoError(t, s.Runtimes().RecordEvent(ctx, rows.RuntimeEvent{
		ID: uuid.NewString(), RuntimeID: rt.ID, EventType: "Started", Timestamp: epoch, Message: "up", Severity: "Info",
	}))
	require.NoError(t, s.Runtimes().RecordEvent(ctx, rows.RuntimeEvent{
		ID: uuid.NewString(), RuntimeID: rt.ID, EventType: "Crashed", Timestamp: epoch.Add(time.Minute),
		Message: "down", Details: &details, Severity: "Error",
	}))
	events, err := s.Runtimes().Events(ctx, rt.ID, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Crashed", events[0].EventType)
	require.NotNil(t, events[0].Details)

	ok, err := s.Runtimes().Delete(ctx, rt.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	gone, err := s.Runtimes().Get(ctx, rt.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMonitoringRecords(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	m := newModel("alpha", 1, epoch)
	seed(t, s, m)
	mon := s.Monitoring()

	latest, err := mon.LatestGlobalConfig(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)
	require.NoError(t, mon.SaveGlobalConfig(ctx, rows.GlobalConfig{
		ID: uuid.NewString(), Version: "1", ConfigData: `{"a":1}`, CreatedAt: epoch, UpdatedAt: epoch,
	}))
	require.NoError(t, mon.SaveGlobalConfig(ctx, rows.GlobalConfig{
		ID: uuid.NewString(), Version: "2", ConfigData: `{"a":2}`, CreatedAt: epoch.Add(time.Minute), UpdatedAt: epoch,
	}))
	latest, err = mon.LatestGlobalConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "2", latest.Version)

	require.NoError(t, mon.RecordModelMetrics(ctx, rows.ModelMetrics{
		ID: uuid.NewString(), ModelID: m.ID, Timestamp: epoch, Status: "Healthy", TotalRequests: 10, TokensPerSecond: 42.5,
	}))
	mm, err := mon.ModelMetricsHistory(ctx, m.ID, epoch.Add(-time.Minute), epoch.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, mm, 1)
	assert.Nil(t, mm[0].RuntimeID)
	assert.InDelta(t, 42.5, mm[0].TokensPerSecond, 1e-9)

	require.NoError(t, mon.RecordSystemMetrics(ctx, rows.SystemMetrics{
		ID: uuid.NewString(), Timestamp: epoch, CPUCores: 8, MemoryTotalBytes: 1 << 34, Load1m: 0.5,
	}))
	sm, err := mon.SystemMetricsHistory(ctx, epoch, epoch.Add(time.Second))
	require.NoError(t, err)
	require.Len(t, sm, 1)
	assert.Equal(t, int32(8), sm[0].CPUCores)

	for i, status := range []string{"Healthy", "Degraded"} {
		require.NoError(t, mon.RecordApplicationMetrics(ctx, rows.ApplicationMetrics{
			ID: uuid.NewString(), Timestamp: epoch.Add(time.Duration(i) * time.Minute), HealthStatus: status,
		}))
	}
	app, err := mon.LatestApplicationMetrics(ctx)
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, "Degraded", app.HealthStatus)

	alert := rows.AlertEvent{
		ID: uuid.NewString(), AlertType: "HighMemoryUsage", Severity: "Warning", Title: "memory",
		TriggeredAt: epoch, Status: "Active", ResourceType: "model", ResourceID: m.ID, ResourceName: m.Name,
		Value: 91, Threshold: 90, Labels: `{}`, Metadata: `{}`,
	}
	_, err = mon.CreateAlert(ctx, alert)
	require.NoError(t, err)
	active, err := mon.ActiveAlerts(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	resolved := epoch.Add(time.Hour)
	alert.Status = "Resolved"
	alert.ResolvedAt = &resolved
	require.NoError(t, mon.UpdateAlert(ctx, alert))
	active, err = mon.ActiveAlerts(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestTaskStatusAndDownloads(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	m := newModel("alpha", 1, epoch)
	seed(t, s, m)

	later := epoch.Add(time.Hour)
	urgent := rows.Task{ID: uuid.NewString(), TaskType: "sync", Payload: `{}`, Status: "Pending", Priority: 9, CreatedAt: epoch, MaxRetries: 3}
	normal := rows.Task{ID: uuid.NewString(), TaskType: "sync", Payload: `{}`, Status: "Pending", Priority: 1, CreatedAt: epoch, MaxRetries: 3}
	deferred := rows.Task{ID: uuid.NewString(), TaskType: "sync", Payload: `{}`, Status: "Pending", Priority: 99, CreatedAt: epoch, MaxRetries: 3, ScheduledAt: &later}
	for _, task := range []rows.Task{normal, urgent, deferred} {
		_, err := s.Tasks().Create(ctx, task)
		require.NoError(t, err)
	}

	pending, err := s.Tasks().Pending(ctx, epoch, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, urgent.ID, pending[0].ID)
	assert.Equal(t, normal.ID, pending[1].ID)

	ok, err := s.Tasks().UpdateStatus(ctx, urgent.ID, "Running")
	require.NoError(t, err)
	assert.True(t, ok)
	got, err := s.Tasks().Get(ctx, urgent.ID)
	require.NoError(t, err)
	require.NotNil(t, got.StartedAt)
	assert.Equal(t, epoch.Add(time.Hour), *got.StartedAt)

	ok, err = s.Tasks().Complete(ctx, urgent.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	got, err = s.Tasks().Get(ctx, urgent.ID)
	require.NoError(t, err)
	assert.Equal(t, "Completed", got.Status)
	require.NotNil(t, got.CompletedAt)

	ok, err = s.Tasks().Fail(ctx, uuid.NewString(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	dl := rows.DownloadTask{
		ID: uuid.NewString(), ModelID: m.ID, URL: "https://example.test/alpha.gguf", FilePath: "/models/alpha.gguf",
		TotalSize: 1000, Status: "Pending", CreatedAt: epoch,
	}
	_, err = s.Tasks().CreateDownload(ctx, dl)
	require.NoError(t, err)
	ok, err = s.Tasks().UpdateDownloadProgress(ctx, dl.ID, 500, 250, 50, "Downloading")
	require.NoError(t, err)
	assert.True(t, ok)
	downloads, err := s.Tasks().DownloadsByModel(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, downloads, 1)
	assert.Equal(t, int64(500), downloads[0].DownloadedSize)
	assert.InDelta(t, 50.0, downloads[0].ProgressPercent, 1e-9)
	assert.Equal(t, "Downloading", downloads[0].Status)
}

func TestSessionTouchDeleteAndUsage(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	sess := rows.UserSession{
		ID: uuid.NewString(), UserID: "u1", SessionToken: "tok", CreatedAt: epoch,
		ExpiresAt: epoch.Add(time.Hour), LastAccessed: epoch, IPAddress: "10.0.0.1", IsActive: true,
	}
	_, err := s.Sessions().Create(ctx, sess)
	require.NoError(t, err)

	ok, err := s.Sessions().Touch(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	got, err := s.Sessions().ByToken(ctx, "tok")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, epoch.Add(time.Hour), got.LastAccessed)

	ok, err = s.Sessions().Delete(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Sessions().Touch(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Sessions().RecordAPIUsage(ctx, rows.APIUsage{
			ID: uuid.NewString(), Endpoint: "/v1/models", Method: "GET", Timestamp: epoch.Add(time.Duration(i) * time.Minute),
			ResponseTimeMS: 12, StatusCode: 200, IPAddress: "10.0.0.1",
		}))
	}
	usage, err := s.Sessions().APIUsageBetween(ctx, epoch.Add(time.Minute), epoch.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Nil(t, usage[0].APIKeyID)
	assert.Equal(t, epoch.Add(time.Minute), usage[0].Timestamp)
}

func TestSourceListUpdateDelete(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	mk := func(name string, priority int32) rows.Source {
		return rows.Source{
			ID: uuid.NewString(), Name: name, URL: "https://" + name + ".test", RepoType: "HuggingFace",
			Enabled: true, SyncStatus: "Never", Tags: `[]`, Priority: priority, CreatedAt: epoch, UpdatedAt: epoch,
		}
	}
	low, high := mk("mirror", 50), mk("primary", 1)
	for _, src := range []rows.Source{low, high} {
		_, err := s.Sources().Create(ctx, src)
		require.NoError(t, err)
	}
	_, err := s.Sources().Create(ctx, mk("primary", 5))
	assert.True(t, sqlstore.IsConflict(err))

	list, err := s.Sources().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "primary", list[0].Name)

	low.Enabled = false
	low.Priority = 0
	_, err = s.Sources().Update(ctx, low)
	require.NoError(t, err)
	list, err = s.Sources().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mirror", list[0].Name)
	assert.False(t, list[0].Enabled)

	ok, err := s.Sources().Delete(ctx, low.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	gone, err := s.Sources().Get(ctx, low.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
