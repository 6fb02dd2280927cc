package models

import (
	"fmt"
	"strings"
)

// LyricsRequest is the body of POST /generate-lyrics.
type LyricsRequest struct {
	Theme    string `json:"theme"`
	Genre    string `json:"genre,omitempty"`
	Mood     string `json:"mood,omitempty"`
	Language string `json:"language,omitempty"`
}

// Validate requires a theme, as the server does.
func (r LyricsRequest) Validate() error {
	if strings.TrimSpace(r.Theme) == "" {
		return fmt.Errorf("theme is required")
	}
	return nil
}

// Lyrics is the generated text plus the parameters echoed back by the server.
type Lyrics struct {
	Text     string `json:"lyrics"`
	Theme    string `json:"theme"`
	Genre    string `json:"genre"`
	Mood     string `json:"mood"`
	Language string `json:"language"`
}

// SongRequest is the body of POST /generate-song.
type SongRequest struct {
	Prompt   string `json:"prompt"`
	Duration string `json:"duration,omitempty"`
	Tempo    string `json:"tempo,omitempty"`
	Vocals   string `json:"vocals,omitempty"`
}

// Validate requires a prompt, as the server does.
func (r SongRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return fmt.Errorf("prompt is required")
	}
	return nil
}

// SongDescription is a generated song description for AI music platforms.
type SongDescription struct {
	Text   string `json:"song_description"`
	Prompt string `json:"prompt"`
}
