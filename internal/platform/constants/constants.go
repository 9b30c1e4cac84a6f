// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Metadata: Name, description, and version reported by GET /.
  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Messages: User-facing texts shared between packages.
*/
package constants

import "time"

// # Metadata

const (
	AppName        = "MADR API"
	AppDescription = "Meu Acervo Digital de Romances"
	AppVersion     = "0.1.0"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderAuthorization = "Authorization"
	HeaderWWWAuth       = "WWW-Authenticate"
)

// # JSON Field Identifiers

const (
	FieldMessage = "message"
	FieldDetail  = "detail"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Framework Messages
//
// These texts are kept byte-compatible with the previous deployment of the
// API, whose clients match on them.

const (
	MessageNotAuthenticated = "Not authenticated"
	MessageNotFound         = "Not Found"
	MessageMethodNotAllowed = "Method Not Allowed"
	MessageHealthOK         = "OK"
	MessageDatabaseDown     = "Error on database connection"
)

// # Redis Prefixes

const (
	RedisPrefixLoginAttempts = "madr:login_attempts:"
)
