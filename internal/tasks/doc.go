// Package tasks runs recommendation workflows with real-time progress reporting.
//
// # Core Operations
//
//  1. [Engine.Recommend] : songs similar to one seed
//     - Fetches recommendations from the server
//     - Caches every returned song in the local song cache
//     - Records the run in history
//
//  2. [Engine.Weather] : songs matching the weather at a location
//
//  3. [Engine.Batch] : recommendations for many seeds
//     - Bounded worker pool (errgroup) with a shared rate limiter
//     - One export file per seed plus batch_manifest.json
//     - Per-seed failures are collected, not fatal
//
// # Progress Reporting
//
// Operations accept an optional channel of [ProgressUpdate]. Sends use select with default so a slow
// or absent reader never blocks the work.
//
// # Caching and History
//
// [SongCacher] and [HistoryRecorder] are optional. Their errors are logged and never fail a run.
package tasks
