// Package web renders the read-only HTML dashboard served by the serve command.
//
// The page mirrors the TUI dashboard: session totals, today's totals, the day's
// reflection when one has been picked, and one "ash pile" per completed session.
// It is rendered with html/template from an embedded template and refreshes itself
// every 30 seconds. Data comes from a server.Source, the same read-only view that
// backs the JSON API, so the page never writes to the store.
//
// Routes
//
//	GET /              → dashboard page
//	GET /api/sessions  → JSON (internal/server)
//	GET /api/stats     → JSON (internal/server)
//	GET /api/quote     → JSON (internal/server)
package web
