// internal/importer/renamer.go
package importer

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vmunix/renamarr/internal/metadata"
)

// DefaultScheme renders "Title (Year)/Title (Year).ext".
const DefaultScheme = "{n} ({y})/{n} ({y})"

// Token documents one placeholder accepted in a naming scheme.
type Token struct {
	Token       string `json:"token"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// Tokens lists every placeholder Render understands, in display order.
var Tokens = []Token{
	{"{n}", "Title", "The Matrix"},
	{"{y}", "Year", "1999"},
	{"{s}", "Season, zero padded", "S01"},
	{"{e}", "Episode, zero padded", "E02"},
	{"{s00e00}", "Season and episode", "S01E02"},
	{"{t}", "Episode title", "Cat's in the Bag..."},
	{"{vf}", "Video resolution", "1080p"},
	{"{vc}", "Video codec", "HEVC"},
	{"{af}", "Audio codec", "DTS"},
	{"{ac}", "Audio channels", "5.1"},
	{"{resolution}", "Video resolution (long form)", "1080p"},
	{"{video_codec}", "Video codec (long form)", "HEVC"},
	{"{audio_codec}", "Audio codec (long form)", "DTS"},
	{"{channels}", "Audio channels (long form)", "5.1"},
	{"{bit_depth}", "Video bit depth", "10bit"},
}

var (
	titleIllegal = regexp.MustCompile(`[<>:"/\\|?*]`)
	separatorRun = regexp.MustCompile(`[/\\]+`)
	spaceRun     = regexp.MustCompile(`\s+`)
)

// Render builds the relative destination name for originalPath from a match and
// a naming scheme. A nil match yields the original base name. The result always
// ends with the original extension.
//
// Substitution is literal: unknown placeholders are left in place. Season and
// episode tokens are empty unless both numbers are non-zero.
func Render(originalPath string, mi *metadata.MatchInfo, scheme string) string {
	if mi == nil {
		return filepath.Base(originalPath)
	}
	if scheme == "" {
		scheme = DefaultScheme
	}
	ext := filepath.Ext(originalPath)

	title := mi.Title
	if title == "" {
		title = "Unknown"
	}
	title = titleIllegal.ReplaceAllString(title, "")

	var s, e, se string
	if mi.Season != 0 && mi.Episode != 0 {
		s = fmt.Sprintf("S%02d", mi.Season)
		e = fmt.Sprintf("E%02d", mi.Episode)
		se = s + e
	}

	r := strings.NewReplacer(
		"{n}", title,
		"{y}", mi.Year,
		"{s}", s,
		"{e}", e,
		"{s00e00}", se,
		"{t}", mi.EpisodeTitle,
		"{vf}", mi.Resolution,
		"{vc}", mi.VideoCodec,
		"{af}", mi.AudioCodec,
		"{ac}", mi.Channels,
		"{resolution}", mi.Resolution,
		"{video_codec}", mi.VideoCodec,
		"{audio_codec}", mi.AudioCodec,
		"{channels}", mi.Channels,
		"{bit_depth}", mi.BitDepth,
	)
	name := r.Replace(scheme)

	name = separatorRun.ReplaceAllString(name, "/")
	name = spaceRun.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	if !strings.HasSuffix(name, ext) {
		name += ext
	}
	return name
}

// Preview renders scheme against a sample match, for showing users what a
// scheme produces before they run it.
func Preview(scheme string, tv bool) string {
	sample := &metadata.MatchInfo{
		Title: "The Matrix", Year: "1999", Type: metadata.TypeMovie,
		Resolution: "1080p", VideoCodec: "HEVC", AudioCodec: "DTS", Channels: "5.1", BitDepth: "10bit",
	}
	path := "The.Matrix.1999.1080p.BluRay.mkv"
	if tv {
		sample = &metadata.MatchInfo{
			Title: "Breaking Bad", Year: "2008", Type: metadata.TypeTV,
			Season: 1, Episode: 2, EpisodeTitle: "Cat's in the Bag...",
			Resolution: "720p", VideoCodec: "AVC", AudioCodec: "AC3", Channels: "5.1", BitDepth: "8bit",
		}
		path = "Breaking.Bad.S01E02.720p.HDTV.mkv"
	}
	return Render(path, sample, scheme)
}
