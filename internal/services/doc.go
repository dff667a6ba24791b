// Package services defines the [Catalog] interface for the upstream music catalog and implements it for Spotify.
//
// # Catalog Interface
//
// The handlers only need three lookups: a track search, the items of a playlist, and the audio features of a
// set of tracks. [Catalog] exposes exactly those and returns the catalog's own response shapes; reshaping into
// [models] types happens in mapper.go.
//
// # Spotify Implementation
//
// [SpotifyService] authenticates with the OAuth2 client credentials flow ([clientcredentials.Config]). The
// token is requested on first use and refreshed automatically by the [oauth2] transport, so the service can be
// shared by concurrent requests without locking.
//
// Playlist items are read page by page (100 per page) until the catalog reports no next page. Audio features
// are requested in batches of 100 ids; the result keeps one entry per id, nil where the catalog has none.
//
// Outbound calls are paced with a [rate.Limiter] when RequestsPerSecond is set. Nothing is retried.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrMissingArgument] : empty query, playlist id or id list
//   - [shared.ErrInvalidInput] : the catalog rejected the request (HTTP 400), via [APIError]
//   - [shared.ErrPlaylistNotFound] : the catalog returned 404 for a playlist
//   - [shared.ErrAPIRequest] : transport failure, token failure, undecodable body or any other status
package services
