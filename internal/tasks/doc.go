// Package tasks turns catalog responses into trackscope responses, with real-time progress reporting for the CLI.
//
// # Core Operations
//
// The [Engine] interface defines four operations:
//
//  1. [Engine.TrackInfo] : first search match for a track/artist pair
//     - Field-filtered query (track:NAME artist:NAME), limit 1
//     - No match is [shared.ErrTrackNotFound], never an empty summary
//
//  2. [Engine.AlbumImage] : album cover of the same match, nil when the album has none
//
//  3. [Engine.PlaylistTracks] : every non-null playlist track in catalog order
//     - Artist names joined with ", "
//     - An empty playlist is an empty list, not an error
//
//  4. [Engine.AnalyzePlaylist] : descriptive statistics over audio features
//     - Tempo mean and median, energy/danceability/valence means
//     - Key and release-year frequency tables
//     - Six charts rendered one after another through [charts.Renderer]
//
// # Release Years
//
// Release years are read from every non-null playlist track, not from the tracks that have audio features.
// The two sets differ when the catalog has no features for some tracks; the year table then counts more tracks
// than the feature statistics.
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters and a message.
// Updates use select with default to prevent blocking; HTTP handlers pass a nil channel.
package tasks
