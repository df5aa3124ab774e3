// Package server provides HTTP routing, middleware, and the JSON API for the local dashboard.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// [Logging], [RateLimit] (a golang.org/x/time/rate token bucket) and [Recover] are provided.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Dashboard API
//
// [APIHandler] serves GET /api/sessions, /api/stats and /api/quote as JSON from a [Source].
// [StoreSource] re-reads the key-value store on every request and never writes to it, so the
// dashboard can run next to a TUI session that is recording completions.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
