// Package server exposes the catalog engine over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally. Middleware runs before the method
// check so CORS preflight requests are answered before a 405 is considered.
//
// # Endpoints
//
// [CatalogHandler] serves:
//   - GET /: welcome message
//   - GET /track-info: first search match for track_name and artist_name
//   - GET /get_album_image: album cover of the same match
//   - GET /get_playlist_tracks: every non-null track of playlist_id
//   - GET /analyze_playlist: audio feature statistics and charts for playlist_id
//
// GET /health is registered directly on the router and never touches the catalog.
//
// # Errors
//
// Every failure is written as {"error": class, "detail": message}. Engine errors are
// classified once, in errors.go: validation 400, not found 404, upstream 502, anything else 500.
//
// # Middleware
//
// [RequestID], [Logging], [Recover], [CORS] (go-chi/cors) and [RateLimit] (go-chi/httprate)
// are applied by [NewRouter] in that order.
package server
