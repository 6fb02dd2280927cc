// Package repositories implements SQLite persistence for history and the local song cache.
//
// Key Implementations:
//   - [HistoryRepository] : searches, selections and recommendation runs, newest first
//   - [SongRepository] : songs seen in results, with soft deletes and substring search
//   - [SongCacheAdapter] : feeds the song cache from results and serves it as an offline searcher
//
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
