package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchRecommendations Phase = iota
	FetchWeather
	SaveResults
	ExportRecommendations
)

func (p Phase) String() string {
	switch p {
	case FetchRecommendations:
		return "fetch_recommendations"
	case FetchWeather:
		return "fetch_weather"
	case SaveResults:
		return "save_results"
	case ExportRecommendations:
		return "export_recommendations"
	default:
		return ""
	}
}

func fetchRecommendationsUpdate(step, total int, seed string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchRecommendations,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Finding songs like %s...", seed),
	}
}

func recommendationsFoundUpdate(step, total int, seed string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchRecommendations,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Found %d songs like %s", count, seed),
		Data:    count,
	}
}

func fetchWeatherUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchWeather,
		Step:    1,
		Total:   1,
		Message: "Checking the weather...",
	}
}

func saveResultsUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveResults,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Caching %d songs...", count),
	}
}

func exportCompletedUpdate(step, total int, seed, file string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportRecommendations,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s → %s", step, total, seed, file),
	}
}

func exportFailedUpdate(step, total int, seed string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportRecommendations,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, seed, err),
	}
}
