package interfaces

import (
	"context"

	"github.com/m-mizutani/wardrobe/pkg/domain/model"
)

// FetcherUseCase resolves catalog entries to images and stores them
type FetcherUseCase interface {
	// DownloadAsset resolves catalogID and writes its image under category.
	// It returns the written path.
	DownloadAsset(ctx context.Context, cookie model.SessionCookie, catalogID model.CatalogID, category model.Category) (string, error)

	// ResolveAssetID maps a catalog ID to the internal asset ID
	ResolveAssetID(ctx context.Context, cookie model.SessionCookie, catalogID model.CatalogID) (model.AssetID, error)

	// FetchImage returns the raw image bytes of an asset
	FetchImage(ctx context.Context, cookie model.SessionCookie, assetID model.AssetID) ([]byte, error)

	// GetThumbnail returns the 420x420 PNG thumbnail of an asset
	GetThumbnail(ctx context.Context, assetID model.AssetID) ([]byte, error)

	// SaveImage writes data under category with a collision-free name
	SaveImage(id string, category model.Category, data []byte) (string, error)
}

// SettingsStore persists Settings between runs
type SettingsStore interface {
	Load() (*model.Settings, error)
	Save(settings *model.Settings) error
	Clear() error
}

// Reporter renders user-facing status lines
type Reporter interface {
	Success(format string, args ...any)
	Warn(format string, args ...any)
	Failure(format string, args ...any)
	Notice(format string, args ...any)
}
