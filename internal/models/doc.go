// Package models defines the request-scoped value shapes returned by the catalog engine.
//
// Nothing here is persisted. A [TrackSummary] comes from the first search match,
// a [PlaylistTrackList] entry from each non-null playlist item, and a [PlaylistReport] from
// the audio features of a playlist. JSON tags match the HTTP contract.
package models
