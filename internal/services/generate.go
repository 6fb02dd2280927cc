package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/songrec/internal/models"
	"github.com/desertthunder/songrec/internal/shared"
)

// GenerateLyrics asks the server for lyrics. Theme is required.
func (c *Client) GenerateLyrics(ctx context.Context, req models.LyricsRequest) (*models.Lyrics, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var lyrics models.Lyrics
	if err := c.doRequest(ctx, http.MethodPost, "/generate-lyrics", req, &lyrics); err != nil {
		return nil, err
	}
	return &lyrics, nil
}

// GenerateSong asks the server for a song description. Prompt is required.
func (c *Client) GenerateSong(ctx context.Context, req models.SongRequest) (*models.SongDescription, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var desc models.SongDescription
	if err := c.doRequest(ctx, http.MethodPost, "/generate-song", req, &desc); err != nil {
		return nil, err
	}
	return &desc, nil
}
