// Package ui implements the interactive song search using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [SearchView] : type to search; results arrive through a debounced, cancellable pipeline
//  2. [RecommendView] : recommendation cards for the chosen song, with deep links
//
// Keystrokes are forwarded to a [search.Pipeline], which renders into a latest-wins channel.
// The [Model] reads that channel as a command so results enter the update loop like any other message,
// and a slow search never blocks typing.
//
// In the recommendation view s and y open the highlighted song in Spotify or YouTube Music and c copies
// the Spotify link to the clipboard. esc goes back to the search with the query kept.
package ui
