package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/songrec/internal/models"
	"github.com/desertthunder/songrec/internal/shared"
)

// SearchSongs returns song names containing q (case-insensitive).
//
// An empty q returns the first page of the catalog.
func (c *Client) SearchSongs(ctx context.Context, q string) ([]string, error) {
	var resp struct {
		Songs []string `json:"songs"`
	}

	endpoint := "/search-songs?q=" + url.QueryEscape(q)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}

	if c.searchLimit > 0 && len(resp.Songs) > c.searchLimit {
		resp.Songs = resp.Songs[:c.searchLimit]
	}
	return resp.Songs, nil
}

// Search implements [search.Searcher] over /search-songs.
func (c *Client) Search(ctx context.Context, q string) ([]models.Song, error) {
	names, err := c.SearchSongs(ctx, q)
	if err != nil {
		return nil, err
	}
	return models.SongsFromNames(names), nil
}

// ListSongs returns every song name in the server's catalog.
func (c *Client) ListSongs(ctx context.Context) ([]string, error) {
	var resp struct {
		Songs []string `json:"songs"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/get-songs", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Songs, nil
}

// Recommend returns songs similar to songName.
func (c *Client) Recommend(ctx context.Context, songName string) ([]models.Song, error) {
	songName = strings.TrimSpace(songName)
	if songName == "" {
		return nil, fmt.Errorf("%w: song name", shared.ErrMissingArgument)
	}

	var resp struct {
		Recommendations []models.Song `json:"recommendations"`
	}
	body := map[string]string{"song_name": songName}
	if err := c.doRequest(ctx, http.MethodPost, "/recommend", body, &resp); err != nil {
		return nil, err
	}
	return resp.Recommendations, nil
}

// WeatherRecommend returns the weather at coords, the mood derived from it and matching songs.
func (c *Client) WeatherRecommend(ctx context.Context, coords models.Coordinates) (*models.WeatherRecommendations, error) {
	if err := coords.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var resp models.WeatherRecommendations
	if err := c.doRequest(ctx, http.MethodPost, "/weather-recommend", coords, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
