package core

import (
	"context"

	"modelregistry/internal/infra/persistence/convert"
	"modelregistry/pkg/domain"
)

// Statistics summarizes the catalog.
type Statistics struct {
	TotalModels      int                         `json:"total_models"`
	InstalledCount   int64                       `json:"installed_count"`
	OfficialCount    int                         `json:"official_count"`
	TotalSizeBytes   uint64                      `json:"total_size_bytes"`
	ModelsByType     map[domain.ModelType]int    `json:"models_by_type"`
	ModelsByProvider map[string]int              `json:"models_by_provider"`
	ModelsBySize     map[domain.SizeCategory]int `json:"models_by_size"`
	// AverageRating is nil when no model has a rating.
	AverageRating *float64 `json:"average_rating,omitempty"`
}

// GetStatistics scans every model once and counts installations.
func (s *Service) GetStatistics(ctx context.Context) (Statistics, error) {
	all, err := s.store.Models().All(ctx)
	if err != nil {
		return Statistics{}, err
	}
	installed, err := s.store.Installed().Count(ctx)
	if err != nil {
		return Statistics{}, err
	}
	models, err := convert.ModelsFromRows(all)
	if err != nil {
		return Statistics{}, err
	}

	stats := Statistics{
		TotalModels:      len(models),
		InstalledCount:   installed,
		ModelsByType:     make(map[domain.ModelType]int),
		ModelsByProvider: make(map[string]int),
		ModelsBySize:     make(map[domain.SizeCategory]int),
	}
	var (
		ratingSum float64
		rated     int
	)
	for _, m := range models {
		stats.TotalSizeBytes += m.FileSize
		if m.IsOfficial {
			stats.OfficialCount++
		}
		stats.ModelsByType[m.ModelType]++
		stats.ModelsByProvider[m.Provider]++
		stats.ModelsBySize[m.SizeCategory]++
		if m.Rating != nil {
			ratingSum += *m.Rating
			rated++
		}
	}
	if rated > 0 {
		avg := ratingSum / float64(rated)
		stats.AverageRating = &avg
	}
	return stats, nil
}
