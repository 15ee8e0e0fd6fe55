// Package pypi provides a client for the PyPI JSON API.
//
// Two endpoints are used:
//
//	GET /pypi/{name}/json            project info plus full release map
//	GET /pypi/{name}/{version}/json  metadata for one pinned release
//
// Responses are cached through pkg/cache and transient transport failures
// are retried with exponential backoff. Package names are normalized per
// PEP 503 before any request is made.
package pypi
