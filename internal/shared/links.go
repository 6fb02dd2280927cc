package shared

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	spotifySearchBase      = "https://open.spotify.com/search/"
	youtubeMusicSearchBase = "https://music.youtube.com/search"
)

// StreamingService names a music streaming site that songs can be deep-linked into.
type StreamingService string

const (
	Spotify      StreamingService = "spotify"
	YouTubeMusic StreamingService = "youtube"
)

// ParseStreamingService accepts the service names and aliases used on the command line.
func ParseStreamingService(s string) (StreamingService, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spotify", "spot":
		return Spotify, nil
	case "youtube", "yt", "ytmusic", "youtube-music":
		return YouTubeMusic, nil
	default:
		return "", fmt.Errorf("%w: unknown streaming service %q", ErrInvalidArgument, s)
	}
}

// searchTerms joins song and artist into the free text sent to streaming search pages.
func searchTerms(song, artist string) string {
	return strings.TrimSpace(strings.TrimSpace(song) + " " + strings.TrimSpace(artist))
}

// SpotifySearchURL builds an open.spotify.com search link for a song and artist.
func SpotifySearchURL(song, artist string) string {
	return spotifySearchBase + url.PathEscape(searchTerms(song, artist))
}

// YouTubeMusicSearchURL builds a music.youtube.com search link for a song and artist.
func YouTubeMusicSearchURL(song, artist string) string {
	return youtubeMusicSearchBase + "?q=" + url.QueryEscape(searchTerms(song, artist))
}

// SearchURL returns the search link for svc.
func SearchURL(svc StreamingService, song, artist string) string {
	if svc == YouTubeMusic {
		return YouTubeMusicSearchURL(song, artist)
	}
	return SpotifySearchURL(song, artist)
}
