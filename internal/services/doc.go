// Package services talks to the music recommendation server.
//
// # Client
//
// [Client] wraps the server's JSON API:
//   - GET /search-songs?q= : song names matching a substring
//   - GET /get-songs : every song the server knows
//   - POST /recommend : similar songs for a seed
//   - POST /weather-recommend : songs matching the weather at a location
//   - POST /generate-lyrics and /generate-song : text generation
//
// Every call goes through a shared rate limiter. Input is validated before any request is made.
//
// # Error Handling
//
// The server reports failures as {"error": "..."} with a non-2xx status, or success=false.
// Both decode into [APIError], which unwraps to a sentinel from the shared package:
//   - [shared.ErrSongNotFound] : 404 from /recommend
//   - [shared.ErrServiceUnavailable] : the server is not initialized or unreachable
//   - [shared.ErrAPIRequest] : everything else
//
// # Caching
//
// [CachedSearcher] sits in front of any [search.Searcher] with an in-memory LRU and
// optionally records every song it sees into a persistent [SongCache].
package services
