package i18n

var ALLOW_LANG = map[string]bool{
	"en":    true,
	"zh-CN": true,
}

const DEFAULT_LANG = "en"

const (
	ERROR_INTERNAL             = "error.internal"
	ERROR_NOT_FOUND            = "error.notfound"
	ERROR_INVALIDARGUMENT      = "error.invalidargument"
	ERROR_CONFIG_MISSING       = "error.config.missing"
	ERROR_UPSTREAM_UNAVAILABLE = "error.upstream.unavailable"
	ERROR_UPSTREAM_MALFORMED   = "error.upstream.malformed"
)
