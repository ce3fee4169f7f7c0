package convert

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelregistry/internal/infra/persistence/rows"
	"modelregistry/pkg/domain"
)

func ptr[T any](v T) *T { return &v }

func sampleModel() domain.Model {
	m := domain.NewModel("llama-chat", "Llama Chat", "2.0", domain.ModelTypeChat, "meta", 5_000_000_000)
	m.Description = ptr("chat tuned")
	m.License = ptr("llama2")
	m.Tags = []string{"chat", "llm", "chat"}
	m.Languages = []string{"en", "fr"}
	m.FilePath = ptr("/models/llama.gguf")
	m.Checksum = ptr("sha256:abc")
	m.DownloadURL = ptr("https://example.test/llama.gguf")
	m.Config = map[string]any{"temperature": 0.7, "stop": []any{"</s>"}, "nested": map[string]any{"k": "v"}}
	m.Rating = ptr(4.5)
	m.DownloadCount = 12
	m.IsOfficial = true
	return m
}

func TestModelRoundTrip(t *testing.T) {
	m := sampleModel()
	row, err := ModelToRow(m)
	require.NoError(t, err)
	assert.Equal(t, "Chat", row.ModelType)
	assert.Equal(t, "Medium", row.SizeCategory)
	assert.Equal(t, `["chat","llm","chat"]`, row.Tags)

	back, err := ModelFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, m, back)

	again, err := ModelToRow(back)
	require.NoError(t, err)
	assert.Equal(t, row, again)
}

func TestModelToRowEmptyCollections(t *testing.T) {
	m := sampleModel()
	m.Tags = nil
	m.Languages = nil
	m.Config = nil
	row, err := ModelToRow(m)
	require.NoError(t, err)
	assert.Equal(t, "[]", row.Tags)
	assert.Equal(t, "[]", row.Languages)
	assert.Equal(t, "{}", row.Config)
}

func TestModelToRowRecomputesSizeCategory(t *testing.T) {
	m := sampleModel()
	m.FileSize = 50_000_000_000
	m.SizeCategory = domain.SizeSmall
	row, err := ModelToRow(m)
	require.NoError(t, err)
	assert.Equal(t, "XLarge", row.SizeCategory)
}

func TestModelFromRowRejectsUnknownEnum(t *testing.T) {
	row, err := ModelToRow(sampleModel())
	require.NoError(t, err)

	for _, bad := range []string{"Image", "chat", "", "Other"} {
		r := row
		r.ModelType = bad
		_, err := ModelFromRow(r)
		require.Error(t, err, bad)
		var ce *ConversionError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, InvalidEnumValue, ce.Kind)
		assert.Equal(t, "model_type", ce.Field)
		assert.Equal(t, bad, ce.Value)
	}

	r := row
	r.SizeCategory = "Huge"
	_, err = ModelFromRow(r)
	assert.True(t, errors.Is(err, &ConversionError{Kind: InvalidEnumValue, Field: "size_category"}))
}

func TestModelToRowRejectsUnknownEnum(t *testing.T) {
	m := sampleModel()
	m.ModelType = "Video"
	_, err := ModelToRow(m)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, InvalidEnumValue, kind)
}

func TestModelFromRowMalformedJSONNamesColumn(t *testing.T) {
	row, err := ModelToRow(sampleModel())
	require.NoError(t, err)
	cases := map[string]func(r *rows.Model){
		"tags":      func(r *rows.Model) { r.Tags = `["a",` },
		"languages": func(r *rows.Model) { r.Languages = `{"not":"a list"}` },
		"config":    func(r *rows.Model) { r.Config = `[1,2]` },
	}
	for field, mutate := range cases {
		r := row
		mutate(&r)
		_, err := ModelFromRow(r)
		var ce *ConversionError
		require.True(t, errors.As(err, &ce), field)
		assert.Equal(t, MalformedJSON, ce.Kind)
		assert.Equal(t, field, ce.Field)
		assert.Contains(t, err.Error(), field)
	}
}

func TestModelFromRowInvalidIdentifier(t *testing.T) {
	row, err := ModelToRow(sampleModel())
	require.NoError(t, err)
	row.ID = "not-a-uuid"
	_, err = ModelFromRow(row)
	kind, _ := KindOf(err)
	assert.Equal(t, InvalidIdentifier, kind)
}

func TestModelFromRowNormalizesEmptyOptionals(t *testing.T) {
	row, err := ModelToRow(sampleModel())
	require.NoError(t, err)
	empty := ""
	row.Description = &empty
	row.License = &empty
	row.FilePath = &empty
	row.Checksum = &empty
	row.DownloadURL = &empty
	m, err := ModelFromRow(row)
	require.NoError(t, err)
	assert.Nil(t, m.Description)
	assert.Nil(t, m.License)
	assert.Nil(t, m.FilePath)
	assert.Nil(t, m.Checksum)
	assert.Nil(t, m.DownloadURL)
}

func TestNumericNarrowingBoundaries(t *testing.T) {
	m := sampleModel()
	m.FileSize = math.MaxInt64
	row, err := ModelToRow(m)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), row.FileSize)

	m.FileSize = math.MaxInt64 + 1
	_, err = ModelToRow(m)
	assert.True(t, errors.Is(err, &ConversionError{Kind: NumericOverflow, Field: "file_size"}))

	m = sampleModel()
	m.DownloadCount = math.MaxUint64
	_, err = ModelToRow(m)
	assert.True(t, errors.Is(err, &ConversionError{Kind: NumericOverflow, Field: "download_count"}))

	row, err = ModelToRow(sampleModel())
	require.NoError(t, err)
	row.FileSize = -1
	_, err = ModelFromRow(row)
	assert.True(t, errors.Is(err, &ConversionError{Kind: NumericOverflow, Field: "file_size"}))
}

func TestInstalledNumericBoundaries(t *testing.T) {
	inst := domain.NewInstalledModel(uuid.New(), "/opt/m")
	inst.Port = ptr(uint16(math.MaxUint16))
	inst.ProcessID = ptr(uint32(math.MaxInt32))
	row, err := InstalledToRow(inst)
	require.NoError(t, err)
	assert.Equal(t, int32(math.MaxUint16), *row.Port)

	back, err := InstalledFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, inst, back)

	inst.ProcessID = ptr(uint32(math.MaxInt32) + 1)
	_, err = InstalledToRow(inst)
	assert.True(t, errors.Is(err, &ConversionError{Kind: NumericOverflow, Field: "process_id"}))

	row.Port = ptr(int32(math.MaxUint16 + 1))
	_, err = InstalledFromRow(row)
	assert.True(t, errors.Is(err, &ConversionError{Kind: NumericOverflow, Field: "port"}))
}

func TestInstalledStatusStrict(t *testing.T) {
	inst := domain.NewInstalledModel(uuid.New(), "/opt/m")
	row, err := InstalledToRow(inst)
	require.NoError(t, err)
	assert.Equal(t, "Stopped", row.Status)

	for _, s := range domain.ModelStatuses() {
		row.Status = string(s)
		got, err := InstalledFromRow(row)
		require.NoError(t, err)
		assert.Equal(t, s, got.Status)
	}
	row.Status = "Paused"
	_, err = InstalledFromRow(row)
	kind, _ := KindOf(err)
	assert.Equal(t, InvalidEnumValue, kind)
}

func TestModelWithInstallFromRow(t *testing.T) {
	m := sampleModel()
	mr, err := ModelToRow(m)
	require.NoError(t, err)
	inst := domain.NewInstalledModel(m.ID, "/opt/llama")
	ir, err := InstalledToRow(inst)
	require.NoError(t, err)

	got, err := ModelWithInstallFromRow(rows.ModelWithInstall{Model: mr, Installed: &ir})
	require.NoError(t, err)
	require.NotNil(t, got.Installed)
	assert.Equal(t, inst, *got.Installed)

	got, err = ModelWithInstallFromRow(rows.ModelWithInstall{Model: mr})
	require.NoError(t, err)
	assert.Nil(t, got.Installed)
}

func TestAvailableRoundTrip(t *testing.T) {
	now := domain.Now()
	a := domain.AvailableModel{
		ID:          uuid.New(),
		ModelID:     uuid.New(),
		PublishedAt: now,
		LastUpdated: now,
		SystemRequirements: domain.SystemRequirements{
			MinMemoryGB:            8,
			RecommendedMemoryGB:    16,
			MinDiskSpaceGB:         10,
			RequiresGPU:            true,
			SupportedOS:            []string{"linux"},
			SupportedArchitectures: []string{"amd64", "arm64"},
		},
	}
	row, err := AvailableToRow(a)
	require.NoError(t, err)
	assert.Contains(t, row.SystemRequirements, `"requires_gpu":true`)
	back, err := AvailableFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, a, back)

	row.SystemRequirements = "{"
	_, err = AvailableFromRow(row)
	assert.True(t, errors.Is(err, &ConversionError{Kind: MalformedJSON, Field: "system_requirements"}))
}

func TestSourceRoundTripWithAuth(t *testing.T) {
	now := domain.Now()
	s := domain.Source{
		ID:         uuid.New(),
		Name:       "hf",
		URL:        "https://huggingface.co",
		Type:       domain.SourceHuggingFace,
		Enabled:    true,
		SyncStatus: domain.SyncNever,
		Tags:       []string{"public"},
		Priority:   10,
		Auth: &domain.SourceAuth{
			AuthType:    domain.AuthToken,
			Token:       ptr("secret"),
			ExtraParams: map[string]string{"org": "acme"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	row, err := SourceToRow(s)
	require.NoError(t, err)
	require.NotNil(t, row.AuthConfig)
	back, err := SourceFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, s, back)

	s.Auth = nil
	row, err = SourceToRow(s)
	require.NoError(t, err)
	assert.Nil(t, row.AuthConfig)
	back, err = SourceFromRow(row)
	require.NoError(t, err)
	assert.Nil(t, back.Auth)

	bad := `{"auth_type":"Kerberos","extra_params":{}}`
	row.AuthConfig = &bad
	_, err = SourceFromRow(row)
	assert.True(t, errors.Is(err, &ConversionError{Kind: InvalidEnumValue, Field: "auth_config.auth_type"}))
}

func TestRepositoryModelNestedFileTypeStrict(t *testing.T) {
	now := domain.Now()
	m := domain.RepositoryModel{
		ID:           uuid.New(),
		RepositoryID: uuid.New(),
		ModelID:      uuid.New(),
		RepoModelID:  "meta/llama",
		RepoPath:     "meta/llama",
		DownloadURLs: []domain.DownloadURL{{Filename: "w.bin", URL: "https://x.test/w.bin", Size: 42, IsPrimary: true}},
		Files:        []domain.ModelFile{{Filename: "w.bin", Size: 42, FileType: domain.FileWeights, Required: true}},
		Dependencies: []string{},
		UsageExamples: []string{
			"ollama run llama",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	row, err := RepositoryModelToRow(m)
	require.NoError(t, err)
	back, err := RepositoryModelFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, m, back)

	row.Files = `[{"filename":"w.bin","size":1,"file_type":"Blob","required":true}]`
	_, err = RepositoryModelFromRow(row)
	assert.True(t, errors.Is(err, &ConversionError{Kind: InvalidEnumValue, Field: "files.file_type"}))
}

func TestRuntimeEventDetailsNullable(t *testing.T) {
	e := domain.RuntimeEvent{
		ID:        uuid.New(),
		RuntimeID: uuid.New(),
		EventType: domain.EventCrashed,
		Timestamp: domain.Now(),
		Message:   "segfault",
		Severity:  domain.SeverityCritical,
	}
	row, err := RuntimeEventToRow(e)
	require.NoError(t, err)
	assert.Nil(t, row.Details)
	back, err := RuntimeEventFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, e, back)

	e.Details = map[string]any{"exit_code": float64(139)}
	row, err = RuntimeEventToRow(e)
	require.NoError(t, err)
	back, err = RuntimeEventFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, e, back)
}

func TestTaskAndMetricsRoundTrip(t *testing.T) {
	task := domain.NewTask("download", map[string]any{"model": "llama"}, 5)
	tr, err := TaskToRow(task)
	require.NoError(t, err)
	gotTask, err := TaskFromRow(tr)
	require.NoError(t, err)
	assert.Equal(t, task, gotTask)

	runtimeID := uuid.New()
	mm := domain.ModelMetrics{
		ID:               uuid.New(),
		ModelID:          uuid.New(),
		RuntimeID:        &runtimeID,
		Timestamp:        domain.Now(),
		Status:           domain.StatusRunning,
		TotalRequests:    10,
		MemoryUsageBytes: 1 << 30,
		QueueLength:      2,
	}
	mr, err := ModelMetricsToRow(mm)
	require.NoError(t, err)
	gotMM, err := ModelMetricsFromRow(mr)
	require.NoError(t, err)
	assert.Equal(t, mm, gotMM)

	empty := ""
	mr.RuntimeID = &empty
	gotMM, err = ModelMetricsFromRow(mr)
	require.NoError(t, err)
	assert.Nil(t, gotMM.RuntimeID)
}

func TestAlertRoundTrip(t *testing.T) {
	a := domain.AlertEvent{
		ID:          uuid.New(),
		AlertType:   domain.AlertMemory,
		Severity:    domain.AlertWarning,
		Title:       "memory high",
		TriggeredAt: domain.Now(),
		Status:      domain.AlertActive,
		Labels:      map[string]string{"host": "a"},
		Metadata:    map[string]string{},
	}
	row, err := AlertToRow(a)
	require.NoError(t, err)
	back, err := AlertFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, a, back)

	row.Status = "Snoozed"
	_, err = AlertFromRow(row)
	kind, _ := KindOf(err)
	assert.Equal(t, InvalidEnumValue, kind)
}

func TestSessionAndUsageRoundTrip(t *testing.T) {
	now := domain.Now()
	s := domain.UserSession{
		ID:           uuid.New(),
		UserID:       "u1",
		SessionToken: "tok",
		CreatedAt:    now,
		ExpiresAt:    now.Add(time.Hour),
		LastAccessed: now,
		IPAddress:    "127.0.0.1",
		IsActive:     true,
	}
	back, err := SessionFromRow(SessionToRow(s))
	require.NoError(t, err)
	assert.Equal(t, s, back)

	u := domain.APIUsage{
		ID:               uuid.New(),
		Endpoint:         "/v1/models",
		Method:           "GET",
		Timestamp:        now,
		ResponseTimeMS:   12,
		StatusCode:       200,
		RequestSizeBytes: 10,
		IPAddress:        "::1",
	}
	ur, err := APIUsageToRow(u)
	require.NoError(t, err)
	gotU, err := APIUsageFromRow(ur)
	require.NoError(t, err)
	assert.Equal(t, u, gotU)
}

func TestConversionErrorMessage(t *testing.T) {
	err := enumErr("model_type", "Image")
	assert.Equal(t, `convert model_type: invalid enum value "Image"`, err.Error())
	assert.False(t, errors.Is(err, &ConversionError{Kind: MalformedJSON}))
	assert.True(t, errors.Is(err, &ConversionError{Kind: InvalidEnumValue}))
}
