package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"modelregistry/internal/blob"
	"modelregistry/pkg/domain"
)

// CleanupReport counts installation records whose model no longer exists.
type CleanupReport struct {
	Orphaned int `json:"orphaned"`
	Removed  int `json:"removed"`
}

// CleanupOrphanedData finds installations pointing at missing models and,
// when remove is set, deletes them. Engines that enforce the foreign key
// never produce orphans; this covers ones that do not.
func (s *Service) CleanupOrphanedData(ctx context.Context, remove bool) (CleanupReport, error) {
	installs, err := s.store.Installed().All(ctx)
	if err != nil {
		return CleanupReport{}, err
	}
	models, err := s.store.Models().All(ctx)
	if err != nil {
		return CleanupReport{}, err
	}
	known := make(map[string]struct{}, len(models))
	for _, m := range models {
		known[m.ID] = struct{}{}
	}

	var report CleanupReport
	for _, inst := range installs {
		if _, ok := known[inst.ModelID]; ok {
			continue
		}
		report.Orphaned++
		if !remove {
			continue
		}
		ok, err := s.store.Installed().Delete(ctx, inst.ID)
		if err != nil {
			return report, err
		}
		if ok {
			report.Removed++
		}
	}
	if report.Orphaned > 0 {
		s.log.Info().Int("orphaned", report.Orphaned).Int("removed", report.Removed).Msg("orphaned installations")
	}
	return report, nil
}

// CatalogSnapshot is the JSON document written by ExportCatalog.
type CatalogSnapshot struct {
	ExportedAt time.Time      `json:"exported_at"`
	Models     []CatalogEntry `json:"models"`
}

// CatalogEntry is one model in a snapshot.
type CatalogEntry struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	DisplayName   string         `json:"display_name"`
	Description   *string        `json:"description,omitempty"`
	Version       string         `json:"version"`
	ModelType     string         `json:"model_type"`
	SizeCategory  string         `json:"size_category"`
	FileSize      uint64         `json:"file_size"`
	Provider      string         `json:"provider"`
	License       *string        `json:"license,omitempty"`
	Tags          []string       `json:"tags"`
	Languages     []string       `json:"languages"`
	DownloadURL   *string        `json:"download_url,omitempty"`
	Checksum      *string        `json:"checksum,omitempty"`
	Config        map[string]any `json:"config"`
	Rating        *float64       `json:"rating,omitempty"`
	DownloadCount uint64         `json:"download_count"`
	IsOfficial    bool           `json:"is_official"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	Installed *CatalogInstall `json:"installed,omitempty"`
}

// CatalogInstall is the installation part of a CatalogEntry.
type CatalogInstall struct {
	InstallPath string     `json:"install_path"`
	Status      string     `json:"status"`
	InstalledAt time.Time  `json:"installed_at"`
	LastUsed    *time.Time `json:"last_used,omitempty"`
	UsageCount  uint64     `json:"usage_count"`
}

func catalogEntry(mw domain.ModelWithInstall) CatalogEntry {
	m := mw.Model
	e := CatalogEntry{
		ID:            m.ID.String(),
		Name:          m.Name,
		DisplayName:   m.DisplayName,
		Description:   m.Description,
		Version:       m.Version,
		ModelType:     string(m.ModelType),
		SizeCategory:  string(m.SizeCategory),
		FileSize:      m.FileSize,
		Provider:      m.Provider,
		License:       m.License,
		Tags:          m.Tags,
		Languages:     m.Languages,
		DownloadURL:   m.DownloadURL,
		Checksum:      m.Checksum,
		Config:        m.Config,
		Rating:        m.Rating,
		DownloadCount: m.DownloadCount,
		IsOfficial:    m.IsOfficial,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if in := mw.Installed; in != nil {
		e.Installed = &CatalogInstall{
			InstallPath: in.InstallPath,
			Status:      string(in.Status),
			InstalledAt: in.InstalledAt,
			LastUsed:    in.LastUsed,
			UsageCount:  in.UsageCount,
		}
	}
	return e
}

// CatalogKey is the default export key for a snapshot taken at t.
func CatalogKey(t time.Time) string {
	return "catalog/" + t.UTC().Format("20060102T150405Z") + ".json"
}

// ExportCatalog writes a JSON snapshot of every model and its installation to
// store under key (CatalogKey(now) when empty). Keys are never overwritten.
func (s *Service) ExportCatalog(ctx context.Context, store blob.Store, key string) (blob.Info, error) {
	all, err := s.ModelsWithInstallInfo(ctx)
	if err != nil {
		return blob.Info{}, err
	}
	snap := CatalogSnapshot{ExportedAt: domain.Now(), Models: make([]CatalogEntry, 0, len(all))}
	for _, mw := range all {
		snap.Models = append(snap.Models, catalogEntry(mw))
	}
	if key == "" {
		key = CatalogKey(snap.ExportedAt)
	}
	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return blob.Info{}, fmt.Errorf("encode catalog: %w", err)
	}
	info, err := store.Put(ctx, key, bytes.NewReader(body), blob.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"models": strconv.Itoa(len(snap.Models))},
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("export catalog to %s: %w", store.Driver(), err)
	}
	s.log.Info().Str("key", info.Key).Int("models", len(snap.Models)).Str("driver", string(store.Driver())).Msg("catalog exported")
	return info, nil
}
