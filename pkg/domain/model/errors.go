package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// Error kinds of a single item. Failures returned by the fetcher carry one of
// these tags.
var (
	ErrTagInvalidID          = goerr.NewTag("invalid_id")
	ErrTagNetwork            = goerr.NewTag("network_error")
	ErrTagRequest            = goerr.NewTag("request_error")
	ErrTagCopyrightProtected = goerr.NewTag("copyright_protected")
	ErrTagParse              = goerr.NewTag("parse_error")
	ErrTagNotFound           = goerr.NewTag("not_found")
	ErrTagIO                 = goerr.NewTag("io_error")
)

// IsExpected reports whether err is a business outcome (bad input, protected
// or missing asset) rather than a malfunction worth reporting upstream.
func IsExpected(err error) bool {
	return goerr.HasTag(err, ErrTagInvalidID) ||
		goerr.HasTag(err, ErrTagCopyrightProtected) ||
		goerr.HasTag(err, ErrTagNotFound)
}
