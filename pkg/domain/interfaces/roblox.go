package interfaces

import (
	"context"

	"github.com/m-mizutani/wardrobe/pkg/domain/model"
)

// AssetClient performs single exchanges with the asset-delivery and
// thumbnail APIs. It never retries; callers apply the retry policy.
type AssetClient interface {
	// LookupAsset queries the asset-delivery lookup for id
	LookupAsset(ctx context.Context, cookie model.SessionCookie, id string) (*model.AssetLocation, error)

	// FetchLocation downloads the body of a location returned by LookupAsset
	FetchLocation(ctx context.Context, location string) ([]byte, error)

	// BatchThumbnail posts a one-element thumbnail batch request
	BatchThumbnail(ctx context.Context, req model.ThumbnailRequest) (*model.ThumbnailBatchResponse, error)
}
