package roblox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/wardrobe/pkg/domain/interfaces"
	"github.com/m-mizutani/wardrobe/pkg/domain/model"
)

const (
	DefaultAssetDeliveryURL = "https://assetdelivery.roblox.com/v1/assetId/"
	DefaultThumbnailURL     = "https://thumbnails.roblox.com/v1/batch"
	DefaultUserAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultTimeout          = 10 * time.Second

	CookieName = ".ROBLOSECURITY"

	referer = "https://www.roblox.com/"
	origin  = "https://www.roblox.com"
)

// config holds internal client configuration
type config struct {
	assetDeliveryURL string
	thumbnailURL     string
	userAgent        string
	timeout          time.Duration
	httpClient       *http.Client
	logger           *slog.Logger
}

// Option is a functional option for Client configuration
type Option func(*config)

// WithAssetDeliveryURL overrides the lookup endpoint. The ID is appended.
func WithAssetDeliveryURL(u string) Option {
	return func(c *config) {
		c.assetDeliveryURL = u
	}
}

// WithThumbnailURL overrides the thumbnail batch endpoint
func WithThumbnailURL(u string) Option {
	return func(c *config) {
		c.thumbnailURL = u
	}
}

// WithUserAgent sets the User-Agent header of lookup requests
func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.userAgent = ua
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is
// overwritten by the configured timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		c.httpClient = hc
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

type client struct {
	assetDeliveryURL string
	thumbnailURL     string
	userAgent        string
	httpClient       *http.Client
	logger           *slog.Logger
}

// NewClient creates a client for the asset-delivery and thumbnail APIs
func NewClient(opts ...Option) interfaces.AssetClient {
	cfg := &config{
		assetDeliveryURL: DefaultAssetDeliveryURL,
		thumbnailURL:     DefaultThumbnailURL,
		userAgent:        DefaultUserAgent,
		timeout:          DefaultTimeout,
		logger:           slog.Default(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	hc := &http.Client{}
	if cfg.httpClient != nil {
		copied := *cfg.httpClient
		hc = &copied
	}
	hc.Timeout = cfg.timeout

	return &client{
		assetDeliveryURL: cfg.assetDeliveryURL,
		thumbnailURL:     cfg.thumbnailURL,
		userAgent:        cfg.userAgent,
		httpClient:       hc,
		logger:           cfg.logger,
	}
}

// LookupAsset queries the asset-delivery lookup for id
func (c *client) LookupAsset(ctx context.Context, cookie model.SessionCookie, id string) (*model.AssetLocation, error) {
	endpoint := c.assetDeliveryURL + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create lookup request",
			goerr.T(model.ErrTagRequest),
			goerr.V("url", endpoint),
		)
	}
	req.AddCookie(&http.Cookie{Name: CookieName, Value: string(cookie)})
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Referer", referer)
	req.Header.Set("Origin", origin)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var loc model.AssetLocation
	if err := json.Unmarshal(body, &loc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode lookup response",
			goerr.T(model.ErrTagRequest),
			goerr.V("url", endpoint),
		)
	}

	c.logger.Debug("Asset lookup completed",
		"id", id,
		"copyright_protected", loc.IsCopyrightProtected,
		"has_location", loc.Location != "",
	)

	return &loc, nil
}

// FetchLocation downloads the body of a location returned by LookupAsset
func (c *client) FetchLocation(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create location request",
			goerr.T(model.ErrTagRequest),
			goerr.V("url", location),
		)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Fetched location", "url", location, "size_bytes", len(body))
	return body, nil
}

// BatchThumbnail posts a one-element thumbnail batch request
func (c *client) BatchThumbnail(ctx context.Context, thumbReq model.ThumbnailRequest) (*model.ThumbnailBatchResponse, error) {
	payload, err := json.Marshal([]model.ThumbnailRequest{thumbReq})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode thumbnail request", goerr.T(model.ErrTagRequest))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.thumbnailURL, bytes.NewReader(payload))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create thumbnail request",
			goerr.T(model.ErrTagRequest),
			goerr.V("url", c.thumbnailURL),
		)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp model.ThumbnailBatchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to decode thumbnail response",
			goerr.T(model.ErrTagRequest),
			goerr.V("url", c.thumbnailURL),
		)
	}

	return &resp, nil
}

// do sends req and returns the body of a 2xx response. Transport failures
// that are worth retrying are tagged ErrTagNetwork, everything else
// ErrTagRequest.
func (c *client) do(req *http.Request) ([]byte, error) {
	endpoint := req.URL.String()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		tag := model.ErrTagRequest
		if IsTransient(err) {
			tag = model.ErrTagNetwork
		}
		return nil, goerr.Wrap(err, "request failed",
			goerr.T(tag),
			goerr.V("method", req.Method),
			goerr.V("url", endpoint),
		)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("Failed to close response body", "error", err, "url", endpoint)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, goerr.New("unexpected status code",
			goerr.T(model.ErrTagRequest),
			goerr.V("status", resp.StatusCode),
			goerr.V("method", req.Method),
			goerr.V("url", endpoint),
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		tag := model.ErrTagRequest
		if IsTransient(err) {
			tag = model.ErrTagNetwork
		}
		return nil, goerr.Wrap(err, "failed to read response body",
			goerr.T(tag),
			goerr.V("url", endpoint),
		)
	}

	return body, nil
}

// IsTransient reports whether err is a timeout or connection failure.
// Cancellation of the caller's context is not transient.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
