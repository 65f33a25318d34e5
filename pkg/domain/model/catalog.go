package model

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// catalogURLPattern matches ".../catalog/{digits}" followed by a path
// separator, query, fragment or the end of the string.
var catalogURLPattern = regexp.MustCompile(`/catalog/(\d+)(?:[/?#]|$)`)

// IsCatalogURL reports whether input looks like a catalog page URL
func IsCatalogURL(input string) bool {
	s := strings.TrimSpace(input)
	return (strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")) &&
		strings.Contains(s, "/catalog/")
}

// ExtractCatalogID pulls the numeric ID out of a catalog URL
func ExtractCatalogID(url string) (CatalogID, error) {
	m := catalogURLPattern.FindStringSubmatch(strings.TrimSpace(url))
	if m == nil {
		return "", goerr.New("failed to extract clothing ID from URL",
			goerr.T(ErrTagInvalidID),
			goerr.V("url", url),
		)
	}
	return CatalogID(m[1]), nil
}

// ParseCatalogInput turns a single user input (URL or bare ID) into a
// CatalogID. Bare input is only trimmed; validation happens at download time.
func ParseCatalogInput(input string) (CatalogID, error) {
	if IsCatalogURL(input) {
		return ExtractCatalogID(input)
	}
	return CatalogID(strings.TrimSpace(input)), nil
}
