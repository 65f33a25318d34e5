package usecase_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/wardrobe/pkg/domain/model"
)

// MockAssetClient is a mock implementation of AssetClient
type MockAssetClient struct {
	lookupAssetFunc    func(ctx context.Context, cookie model.SessionCookie, id string) (*model.AssetLocation, error)
	fetchLocationFunc  func(ctx context.Context, location string) ([]byte, error)
	batchThumbnailFunc func(ctx context.Context, req model.ThumbnailRequest) (*model.ThumbnailBatchResponse, error)

	lookupCalls    []string
	fetchCalls     []string
	thumbnailCalls []model.ThumbnailRequest
}

func (m *MockAssetClient) LookupAsset(ctx context.Context, cookie model.SessionCookie, id string) (*model.AssetLocation, error) {
	m.lookupCalls = append(m.lookupCalls, id)
	if m.lookupAssetFunc != nil {
		return m.lookupAssetFunc(ctx, cookie, id)
	}
	return nil, goerr.New("mock not configured")
}

func (m *MockAssetClient) FetchLocation(ctx context.Context, location string) ([]byte, error) {
	m.fetchCalls = append(m.fetchCalls, location)
	if m.fetchLocationFunc != nil {
		return m.fetchLocationFunc(ctx, location)
	}
	return nil, goerr.New("mock not configured")
}

func (m *MockAssetClient) BatchThumbnail(ctx context.Context, req model.ThumbnailRequest) (*model.ThumbnailBatchResponse, error) {
	m.thumbnailCalls = append(m.thumbnailCalls, req)
	if m.batchThumbnailFunc != nil {
		return m.batchThumbnailFunc(ctx, req)
	}
	return nil, goerr.New("mock not configured")
}

// MockReporter records every line instead of printing it
type MockReporter struct {
	mu    sync.Mutex
	Lines []string
}

func (m *MockReporter) add(level, format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = append(m.Lines, level+": "+fmt.Sprintf(format, args...))
}

func (m *MockReporter) Success(format string, args ...any) { m.add("success", format, args...) }
func (m *MockReporter) Warn(format string, args ...any)    { m.add("warn", format, args...) }
func (m *MockReporter) Failure(format string, args ...any) { m.add("failure", format, args...) }
func (m *MockReporter) Notice(format string, args ...any)  { m.add("notice", format, args...) }

// newTwoStageClient serves the catalog → asset → image flow:
// catalog lookup → location A → XML with asset ID → asset lookup → location B → image
func newTwoStageClient(catalogID, assetID string, image []byte) *MockAssetClient {
	return &MockAssetClient{
		lookupAssetFunc: func(ctx context.Context, cookie model.SessionCookie, id string) (*model.AssetLocation, error) {
			switch id {
			case catalogID:
				return &model.AssetLocation{Location: "https://example.com/catalog/" + id}, nil
			case assetID:
				return &model.AssetLocation{Location: "https://example.com/image/" + id}, nil
			}
			return nil, goerr.New("unexpected id", goerr.T(model.ErrTagRequest))
		},
		fetchLocationFunc: func(ctx context.Context, location string) ([]byte, error) {
			switch location {
			case "https://example.com/catalog/" + catalogID:
				return []byte("<roblox><url>http://www.roblox.com/asset/?id=" + assetID + "</url></roblox>"), nil
			case "https://example.com/image/" + assetID:
				return image, nil
			}
			return nil, goerr.New("unexpected location", goerr.T(model.ErrTagRequest))
		},
	}
}

func networkError() error {
	return goerr.New("connection refused", goerr.T(model.ErrTagNetwork))
}
