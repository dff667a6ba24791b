package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchTracks Phase = iota
	FetchFeatures
	Aggregate
	RenderCharts
)

func (p Phase) String() string {
	switch p {
	case FetchTracks:
		return "fetch_tracks"
	case FetchFeatures:
		return "fetch_features"
	case Aggregate:
		return "aggregate"
	case RenderCharts:
		return "render_charts"
	default:
		return ""
	}
}

func fetchingTracksUpdate(playlistID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching tracks of playlist %s...", playlistID),
	}
}

func fetchingFeaturesUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchFeatures,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching audio features for %d tracks...", count),
	}
}

func aggregatingUpdate(analyzed, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Aggregate,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Aggregating %d of %d tracks...", analyzed, total),
	}
}

func renderingUpdate(step, total int, chart string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RenderCharts,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Rendering %s chart...", chart),
	}
}
