// Package server runs the offline search server.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Offline Mode
//
// [NewOfflineRouter] serves GET /search-songs and /get-songs from the local song cache with the same
// JSON shape as the recommendation server, so the TUI and CLI can search previously seen songs without
// the server. Endpoints that need the server answer 503.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
