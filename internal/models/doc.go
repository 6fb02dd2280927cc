// Package models defines domain entities and persistence interfaces for the songrec client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): structs decoded from the recommendation server's JSON
//   - [Song] : a search result or recommendation card
//   - [Weather], [WeatherRecommendations] : weather-matched playlists
//   - [LyricsRequest], [Lyrics], [SongRequest], [SongDescription] : text generation
//
// 2. Persistent Entities: database-backed records implementing [Model]
//   - [HistoryEntry] : searches, selections and recommendation lookups
//   - [CachedSong] : songs seen in results, used by the offline search server
//
// The Repository[T] interface defines standard data access operations.
package models
