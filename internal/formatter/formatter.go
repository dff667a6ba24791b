// package formatter renders catalog results for the terminal and exports them to CSV & PNG files
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/trackscope/internal/charts"
	"github.com/desertthunder/trackscope/internal/models"
	"github.com/desertthunder/trackscope/internal/tasks"
)

var styles = NewPalette("#1DB954", "#04B575", "#FFA500", "#626262")

// Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	label lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		label: NewBold(s),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

func field(buf *bytes.Buffer, label, value string) {
	buf.WriteString(styles.label.Render(label+":") + " " + value + "\n")
}

func orNone(s *string) string {
	if s == nil || *s == "" {
		return styles.help.Render("none")
	}
	return *s
}

// TrackText renders a single track lookup.
func TrackText(summary *models.TrackSummary) string {
	var buf bytes.Buffer
	buf.WriteString(styles.title.Render(summary.TrackName) + "\n")
	field(&buf, "Artist", summary.ArtistName)
	field(&buf, "Album", summary.AlbumName)
	field(&buf, "Released", summary.ReleaseDate)
	field(&buf, "Preview", orNone(summary.PreviewURL))
	field(&buf, "Spotify", summary.SpotifyURL)
	field(&buf, "Cover", orNone(summary.AlbumImage))
	return buf.String()
}

// AlbumImageText renders the cover URL or a placeholder.
func AlbumImageText(image *models.AlbumImage) string {
	return orNone(image.AlbumImage) + "\n"
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.help).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.label.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// PlaylistText renders a playlist listing as a numbered table.
func PlaylistText(list *models.PlaylistTrackList) string {
	if len(list.PlaylistTracks) == 0 {
		return styles.warn.Render("Playlist has no tracks") + "\n"
	}

	t := newTable("#", "Track", "Artist", "Album", "Released")
	for i, track := range list.PlaylistTracks {
		t.Row(strconv.Itoa(i+1), track.TrackName, track.ArtistName, track.AlbumName, track.ReleaseDate)
	}
	return t.String() + "\n" + styles.help.Render(fmt.Sprintf("%d tracks", len(list.PlaylistTracks))) + "\n"
}

// ReportText renders the statistics of a playlist analysis. Chart images are listed by name only.
func ReportText(report *models.PlaylistReport) string {
	var buf bytes.Buffer
	buf.WriteString(styles.title.Render("Playlist analysis") + "\n")
	field(&buf, "Tracks", fmt.Sprintf("%d (%d with audio features)", report.TrackCount, report.AnalyzedCount))
	field(&buf, "BPM", fmt.Sprintf("average %.2f, median %.2f", report.BPM.Average, report.BPM.Median))
	field(&buf, "Energy", fmt.Sprintf("%.3f", report.Energy.Average))
	field(&buf, "Danceability", fmt.Sprintf("%.3f", report.Danceability.Average))
	field(&buf, "Valence", fmt.Sprintf("%.3f", report.Valence.Average))

	keys := newTable("Key", "Tracks")
	for _, k := range sortedKeys(report.Keys) {
		keys.Row(tasks.KeyName(k), strconv.Itoa(report.Keys[k]))
	}
	buf.WriteString("\n" + keys.String() + "\n")

	if len(report.ReleaseYears) > 0 {
		years := newTable("Year", "Tracks")
		for _, y := range sortedKeys(report.ReleaseYears) {
			years.Row(strconv.Itoa(y), strconv.Itoa(report.ReleaseYears[y]))
		}
		buf.WriteString("\n" + years.String() + "\n")
	} else {
		buf.WriteString("\n" + styles.warn.Render("No release dates") + "\n")
	}

	names := make([]string, 0, len(report.Images))
	for _, name := range models.ChartNames {
		if _, ok := report.Images[name]; ok {
			names = append(names, name)
		}
	}
	buf.WriteString("\n")
	field(&buf, "Charts", strings.Join(names, ", "))
	return buf.String()
}

// ProgressText renders one analysis progress update.
func ProgressText(update tasks.ProgressUpdate) string {
	prefix := update.Phase.String()
	if update.Total > 0 {
		prefix = fmt.Sprintf("%s %d/%d", prefix, update.Step, update.Total)
	}
	return styles.help.Render(fmt.Sprintf("[%s] %s", prefix, update.Message))
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ExportToCSV converts a playlist listing to CSV format with columns:
// Track, Artist, Album, Release Date, Preview URL, Spotify URL, Album Image
func ExportToCSV(list *models.PlaylistTrackList) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Track", "Artist", "Album", "Release Date", "Preview URL", "Spotify URL", "Album Image"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range list.PlaylistTracks {
		record := []string{
			track.TrackName,
			track.ArtistName,
			track.AlbumName,
			track.ReleaseDate,
			deref(track.PreviewURL),
			track.SpotifyURL,
			deref(track.AlbumImage),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// WriteCharts decodes every chart of a report into {dir}/{name}.png and returns the written paths
// in render order.
func WriteCharts(report *models.PlaylistReport, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	files := make([]string, 0, len(report.Images))
	for _, name := range models.ChartNames {
		uri, ok := report.Images[name]
		if !ok {
			continue
		}

		data, err := charts.DecodeDataURI(uri)
		if err != nil {
			return files, fmt.Errorf("failed to decode %s chart: %w", name, err)
		}

		path := filepath.Join(dir, name+".png")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return files, fmt.Errorf("failed to write %s: %w", path, err)
		}
		files = append(files, path)
	}
	return files, nil
}
