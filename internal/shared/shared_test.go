package shared

import "testing"

func TestNormalizeSongKey(t *testing.T) {
	tc := []struct {
		name   string
		song   string
		artist string
		want   string
	}{
		{
			name:   "basic normalization",
			song:   "Song Title",
			artist: "Artist Name",
			want:   "song title|artist name",
		},
		{
			name:   "extra whitespace",
			song:   "  Song   Title  ",
			artist: "  Artist   Name  ",
			want:   "song title|artist name",
		},
		{
			name:   "mixed case",
			song:   "SoNg TiTlE",
			artist: "ArTiSt NaMe",
			want:   "song title|artist name",
		},
		{
			name:   "missing artist",
			song:   "Solo",
			artist: "",
			want:   "solo|",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSongKey(tt.song, tt.artist)
			if got != tt.want {
				t.Errorf("NormalizeSongKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeQuery(t *testing.T) {
	if got := NormalizeQuery("  Bohemian   RHAPSODY "); got != "bohemian rhapsody" {
		t.Errorf("NormalizeQuery() = %q", got)
	}
	if got := NormalizeQuery("   "); got != "" {
		t.Errorf("expected empty query, got %q", got)
	}
}
