// Package domain defines the model registry entities, their closed enum value
// types and the size classification used by the persistence and service layers.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ModelType is the closed set of model families tracked by the registry.
type ModelType string

// Supported model types. The text form is the stored discriminant.
const (
	ModelTypeChat            ModelType = "Chat"
	ModelTypeCode            ModelType = "Code"
	ModelTypeText            ModelType = "Text"
	ModelTypeEmbedding       ModelType = "Embedding"
	ModelTypeMultimodal      ModelType = "Multimodal"
	ModelTypeImageGeneration ModelType = "ImageGeneration"
	ModelTypeSpeech          ModelType = "Speech"
)

// ModelTypes lists every model type in declaration order.
func ModelTypes() []ModelType {
	return []ModelType{
		ModelTypeChat,
		ModelTypeCode,
		ModelTypeText,
		ModelTypeEmbedding,
		ModelTypeMultimodal,
		ModelTypeImageGeneration,
		ModelTypeSpeech,
	}
}

// ParseModelType maps the stored discriminant back to a ModelType.
// Matching is exact; unknown text is rejected rather than defaulted.
func ParseModelType(s string) (ModelType, bool) {
	switch ModelType(s) {
	case ModelTypeChat:
		return ModelTypeChat, true
	case ModelTypeCode:
		return ModelTypeCode, true
	case ModelTypeText:
		return ModelTypeText, true
	case ModelTypeEmbedding:
		return ModelTypeEmbedding, true
	case ModelTypeMultimodal:
		return ModelTypeMultimodal, true
	case ModelTypeImageGeneration:
		return ModelTypeImageGeneration, true
	case ModelTypeSpeech:
		return ModelTypeSpeech, true
	default:
		return "", false
	}
}

// Valid reports whether t is one of the declared model types.
func (t ModelType) Valid() bool {
	_, ok := ParseModelType(string(t))
	return ok
}

// SizeCategory is a coarse bucket derived from the model file size.
type SizeCategory string

// Size buckets, smallest first.
const (
	SizeSmall  SizeCategory = "Small"
	SizeMedium SizeCategory = "Medium"
	SizeLarge  SizeCategory = "Large"
	SizeXLarge SizeCategory = "XLarge"
)

// SizeCategories lists the buckets in ascending order.
func SizeCategories() []SizeCategory {
	return []SizeCategory{SizeSmall, SizeMedium, SizeLarge, SizeXLarge}
}

// ParseSizeCategory maps stored text back to a SizeCategory.
func ParseSizeCategory(s string) (SizeCategory, bool) {
	switch SizeCategory(s) {
	case SizeSmall:
		return SizeSmall, true
	case SizeMedium:
		return SizeMedium, true
	case SizeLarge:
		return SizeLarge, true
	case SizeXLarge:
		return SizeXLarge, true
	default:
		return "", false
	}
}

// Valid reports whether c is one of the declared size buckets.
func (c SizeCategory) Valid() bool {
	_, ok := ParseSizeCategory(string(c))
	return ok
}

const gib = 1 << 30

// Size breakpoints in binary gigabytes. A file lands in the first bucket whose
// upper bound it is strictly below.
const (
	SmallUpperGiB  = 3
	MediumUpperGiB = 8
	LargeUpperGiB  = 30
)

// ClassifySize returns the bucket implied by a file size in bytes.
// The result is monotonic non-decreasing in fileSize.
func ClassifySize(fileSize uint64) SizeCategory {
	switch {
	case fileSize < SmallUpperGiB*gib:
		return SizeSmall
	case fileSize < MediumUpperGiB*gib:
		return SizeMedium
	case fileSize < LargeUpperGiB*gib:
		return SizeLarge
	default:
		return SizeXLarge
	}
}

// Rating bounds accepted by Validate.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// ErrInvalidModel is returned by Validate for structurally invalid models.
var ErrInvalidModel = errors.New("invalid model")

// Model is a named, versioned artifact known to the registry.
type Model struct {
	ID            uuid.UUID
	Name          string
	DisplayName   string
	Description   *string
	Version       string
	ModelType     ModelType
	SizeCategory  SizeCategory
	FileSize      uint64
	Provider      string
	License       *string
	Tags          []string
	Languages     []string
	FilePath      *string
	Checksum      *string
	DownloadURL   *string
	Config        map[string]any
	Rating        *float64
	DownloadCount uint64
	IsOfficial    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewModel constructs a model with a fresh identifier, current timestamps,
// zeroed counters and a size category derived from fileSize.
func NewModel(name, displayName, version string, modelType ModelType, provider string, fileSize uint64) Model {
	now := Now()
	return Model{
		ID:           uuid.New(),
		Name:         name,
		DisplayName:  displayName,
		Version:      version,
		ModelType:    modelType,
		SizeCategory: ClassifySize(fileSize),
		FileSize:     fileSize,
		Provider:     provider,
		Tags:         []string{},
		Languages:    []string{},
		Config:       map[string]any{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Touch refreshes UpdatedAt.
func (m *Model) Touch() {
	m.UpdatedAt = Now()
}

// Validate checks the invariants that cannot be expressed as column constraints.
func (m Model) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidModel)
	}
	if !m.ModelType.Valid() {
		return fmt.Errorf("%w: unknown model type %q", ErrInvalidModel, m.ModelType)
	}
	if m.Rating != nil && (*m.Rating < MinRating || *m.Rating > MaxRating) {
		return fmt.Errorf("%w: rating %.2f outside [%.0f, %.0f]", ErrInvalidModel, *m.Rating, MinRating, MaxRating)
	}
	return nil
}

// Now returns the current UTC time truncated to microseconds, the finest
// precision both storage dialects preserve.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
