package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/wardrobe/pkg/domain/interfaces"
	"github.com/m-mizutani/wardrobe/pkg/domain/model"
	"github.com/m-mizutani/wardrobe/pkg/utils/retry"
)

const (
	// DefaultOutputDir is the root of the per-category directories
	DefaultOutputDir = "clothes"

	suffixLength    = 4
	suffixAlphabet  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxNameAttempts = 16
)

type fetcher struct {
	client    interfaces.AssetClient
	reporter  interfaces.Reporter
	logger    *slog.Logger
	policy    retry.Policy
	outputDir string
	suffix    func() string
}

// FetcherOption is a functional option for the fetcher
type FetcherOption func(*fetcher)

// WithRetryPolicy sets the policy applied to lookup and thumbnail requests
func WithRetryPolicy(p retry.Policy) FetcherOption {
	return func(f *fetcher) {
		f.policy = p
	}
}

// WithOutputDir sets the root directory of saved images
func WithOutputDir(dir string) FetcherOption {
	return func(f *fetcher) {
		f.outputDir = dir
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) FetcherOption {
	return func(f *fetcher) {
		f.logger = logger
	}
}

// WithSuffixGenerator replaces the random file name suffix generator
func WithSuffixGenerator(gen func() string) FetcherOption {
	return func(f *fetcher) {
		f.suffix = gen
	}
}

// NewFetcher creates a new instance of FetcherUseCase
func NewFetcher(client interfaces.AssetClient, reporter interfaces.Reporter, opts ...FetcherOption) interfaces.FetcherUseCase {
	f := &fetcher{
		client:    client,
		reporter:  reporter,
		logger:    slog.Default(),
		policy:    retry.DefaultPolicy(),
		outputDir: DefaultOutputDir,
		suffix:    randomSuffix,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// DownloadAsset resolves catalogID to its image and writes it under category
func (uc *fetcher) DownloadAsset(ctx context.Context, cookie model.SessionCookie, catalogID model.CatalogID, category model.Category) (path string, err error) {
	logger := uc.logger.With("catalog_id", catalogID, "category", category)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic while downloading asset",
				"recover", r,
				"stack", string(debug.Stack()),
			)
			path = ""
			err = goerr.New("unexpected error while downloading asset",
				goerr.V("catalog_id", catalogID),
				goerr.V("recover", fmt.Sprint(r)),
			)
		}
	}()

	if err := catalogID.Validate(); err != nil {
		return "", err
	}
	if category == "" {
		category = model.DefaultCategory
	}

	if _, err := uc.ensureDir(category); err != nil {
		return "", err
	}

	logger.Info("Downloading asset")

	assetID, err := uc.ResolveAssetID(ctx, cookie, catalogID)
	if err != nil {
		return "", err
	}

	data, err := uc.FetchImage(ctx, cookie, assetID)
	if err != nil {
		return "", err
	}

	path, err = uc.SaveImage(string(catalogID), category, data)
	if err != nil {
		return "", err
	}

	logger.Info("Saved asset image",
		"asset_id", assetID,
		"path", path,
		"size_bytes", len(data),
	)

	return path, nil
}

// ResolveAssetID maps a catalog ID to the internal asset ID
func (uc *fetcher) ResolveAssetID(ctx context.Context, cookie model.SessionCookie, catalogID model.CatalogID) (model.AssetID, error) {
	if err := catalogID.Validate(); err != nil {
		return "", err
	}

	loc, err := uc.lookup(ctx, cookie, string(catalogID), "resolve asset ID")
	if err != nil {
		return "", err
	}
	if loc.Location == "" {
		return "", goerr.New("no location found for catalog ID",
			goerr.T(model.ErrTagNotFound),
			goerr.V("catalog_id", catalogID),
		)
	}

	body, err := uc.client.FetchLocation(ctx, loc.Location)
	if err != nil {
		return "", goerr.Wrap(err, "failed to fetch asset location",
			goerr.V("catalog_id", catalogID),
		)
	}

	assetID, ok := model.ExtractAssetID(body)
	if !ok {
		return "", goerr.New("could not parse asset ID from location response",
			goerr.T(model.ErrTagParse),
			goerr.V("catalog_id", catalogID),
		)
	}

	uc.logger.Debug("Resolved asset ID", "catalog_id", catalogID, "asset_id", assetID)
	return assetID, nil
}

// FetchImage returns the raw image bytes of an asset
func (uc *fetcher) FetchImage(ctx context.Context, cookie model.SessionCookie, assetID model.AssetID) ([]byte, error) {
	if err := assetID.Validate(); err != nil {
		return nil, err
	}

	loc, err := uc.lookup(ctx, cookie, string(assetID), "fetch image")
	if err != nil {
		return nil, err
	}
	if loc.Location == "" {
		return nil, goerr.New("no location found for PNG URL",
			goerr.T(model.ErrTagNotFound),
			goerr.V("asset_id", assetID),
		)
	}

	data, err := uc.client.FetchLocation(ctx, loc.Location)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download image",
			goerr.V("asset_id", assetID),
		)
	}

	return data, nil
}

// GetThumbnail returns the 420x420 PNG thumbnail of an asset
func (uc *fetcher) GetThumbnail(ctx context.Context, assetID model.AssetID) ([]byte, error) {
	if err := assetID.Validate(); err != nil {
		return nil, err
	}
	targetID, err := strconv.ParseInt(string(assetID), 10, 64)
	if err != nil {
		return nil, goerr.Wrap(err, "asset ID out of range",
			goerr.T(model.ErrTagInvalidID),
			goerr.V("asset_id", assetID),
		)
	}

	var resp *model.ThumbnailBatchResponse
	err = uc.policy.Do(ctx, isNetworkError, uc.notifyRetry("get thumbnail", string(assetID)), func(ctx context.Context) error {
		var err error
		resp, err = uc.client.BatchThumbnail(ctx, model.NewAssetThumbnailRequest(targetID))
		return err
	})
	if err != nil {
		return nil, uc.retryFailure(err, "get thumbnail", string(assetID))
	}

	imageURL := resp.FirstImageURL()
	if imageURL == "" {
		return nil, goerr.New("could not extract thumbnail URL from response",
			goerr.T(model.ErrTagParse),
			goerr.V("asset_id", assetID),
			goerr.V("entries", len(resp.Data)),
		)
	}

	data, err := uc.client.FetchLocation(ctx, imageURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download thumbnail",
			goerr.V("asset_id", assetID),
		)
	}

	return data, nil
}

// SaveImage writes data to {outputDir}/{category}/{id}_{suffix}.png. The
// suffix is redrawn while the candidate name already exists.
func (uc *fetcher) SaveImage(id string, category model.Category, data []byte) (string, error) {
	dir, err := uc.ensureDir(category)
	if err != nil {
		return "", err
	}

	for range maxNameAttempts {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", id, uc.suffix()))

		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", goerr.Wrap(err, "failed to check file",
				goerr.T(model.ErrTagIO),
				goerr.V("path", path),
			)
		}

		if err := writeFile(path, data); err != nil {
			return "", err
		}
		return path, nil
	}

	return "", goerr.New("failed to find an unused file name",
		goerr.T(model.ErrTagIO),
		goerr.V("dir", dir),
		goerr.V("id", id),
	)
}

// lookup runs the asset-delivery lookup under the retry policy and turns a
// copyright flag into an error
func (uc *fetcher) lookup(ctx context.Context, cookie model.SessionCookie, id, op string) (*model.AssetLocation, error) {
	var loc *model.AssetLocation
	err := uc.policy.Do(ctx, isNetworkError, uc.notifyRetry(op, id), func(ctx context.Context) error {
		var err error
		loc, err = uc.client.LookupAsset(ctx, cookie, id)
		return err
	})
	if err != nil {
		return nil, uc.retryFailure(err, op, id)
	}

	if loc.IsCopyrightProtected {
		uc.reporter.Failure("Copyright Protected! ID: %s", id)
		return nil, goerr.New("asset is copyright protected",
			goerr.T(model.ErrTagCopyrightProtected),
			goerr.V("id", id),
		)
	}

	return loc, nil
}

func (uc *fetcher) notifyRetry(op, id string) retry.Notify {
	return func(attempt int, err error) {
		uc.logger.Warn("Request attempt failed", "op", op, "id", id, "attempt", attempt, "error", err)
		uc.reporter.Warn("Attempt %d to %s (%s) failed: %v. Retrying in %s...", attempt, op, id, err, uc.policy.Delay)
	}
}

func (uc *fetcher) retryFailure(err error, op, id string) error {
	if goerr.HasTag(err, model.ErrTagNetwork) {
		return goerr.Wrap(err, "max retries reached",
			goerr.V("op", op),
			goerr.V("id", id),
			goerr.V("attempts", uc.policy.MaxAttempts),
		)
	}
	return goerr.Wrap(err, "failed to "+op, goerr.V("id", id))
}

func (uc *fetcher) ensureDir(category model.Category) (string, error) {
	if category == "" || filepath.Base(string(category)) != string(category) || category == ".." {
		return "", goerr.New("invalid category",
			goerr.T(model.ErrTagIO),
			goerr.V("category", category),
		)
	}

	dir := filepath.Join(uc.outputDir, string(category))
	for _, d := range []string{uc.outputDir, dir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return "", goerr.Wrap(err, "failed to create directory",
				goerr.T(model.ErrTagIO),
				goerr.V("dir", d),
			)
		}
	}

	return dir, nil
}

func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return goerr.Wrap(err, "failed to create image file",
			goerr.T(model.ErrTagIO),
			goerr.V("path", path),
		)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return goerr.Wrap(err, "failed to write image file",
			goerr.T(model.ErrTagIO),
			goerr.V("path", path),
		)
	}

	if err := f.Close(); err != nil {
		return goerr.Wrap(err, "failed to close image file",
			goerr.T(model.ErrTagIO),
			goerr.V("path", path),
		)
	}

	return nil
}

func isNetworkError(err error) bool {
	return goerr.HasTag(err, model.ErrTagNetwork)
}

func randomSuffix() string {
	b := make([]byte, suffixLength)
	for i := range b {
		b[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}
	return string(b)
}
