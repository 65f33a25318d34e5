package model

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// CatalogID is the public identifier of a catalog entry
type CatalogID string

// Validate checks that the ID is a non-empty run of decimal digits
func (x CatalogID) Validate() error {
	if !isDigits(string(x)) {
		return goerr.New("ID must consist of digits only",
			goerr.T(ErrTagInvalidID),
			goerr.V("catalog_id", string(x)),
		)
	}
	return nil
}

func (x CatalogID) String() string { return string(x) }

// AssetID is the internal identifier resolved from a CatalogID
type AssetID string

func (x AssetID) String() string { return string(x) }

// Validate checks that the ID is a non-empty run of decimal digits
func (x AssetID) Validate() error {
	if !isDigits(string(x)) {
		return goerr.New("asset ID must consist of digits only",
			goerr.T(ErrTagInvalidID),
			goerr.V("asset_id", string(x)),
		)
	}
	return nil
}

// SessionCookie is the .ROBLOSECURITY value. It is a distinct type so that the
// logger can redact it.
type SessionCookie string

// Category selects the output subdirectory
type Category string

const (
	CategoryShirts     Category = "shirts"
	CategoryPants      Category = "pants"
	CategoryThumbnails Category = "thumbnails"

	DefaultCategory = CategoryShirts
)

// Categories lists the categories accepted from the command line
var Categories = []Category{CategoryShirts, CategoryPants}

// ParseCategory returns DefaultCategory for an empty string
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultCategory, nil
	}
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", goerr.New("unknown category", goerr.V("category", s))
}

// AssetLocation is the decoded body of an asset-delivery lookup
type AssetLocation struct {
	IsCopyrightProtected bool   `json:"IsCopyrightProtected"`
	Location             string `json:"location"`
}

var assetURLPattern = regexp.MustCompile(`<url>http://www\.roblox\.com/asset/\?id=(\d+)</url>`)

// ExtractAssetID finds the asset ID embedded in the body returned by the
// first location. ok is false when the pattern does not appear.
func ExtractAssetID(body []byte) (AssetID, bool) {
	m := assetURLPattern.FindSubmatch(body)
	if m == nil {
		return "", false
	}
	return AssetID(m[1]), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
