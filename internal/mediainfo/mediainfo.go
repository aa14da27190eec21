// Package mediainfo extracts technical stream details (resolution, codecs, channels)
// from video files with ffprobe, falling back to the tokens in the filename.
package mediainfo

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-json"

	"github.com/vmunix/renamarr/pkg/release"
)

// Info holds the technical fields merged into a match.
type Info struct {
	Resolution string `json:"resolution,omitempty"`
	VideoCodec string `json:"video_codec,omitempty"`
	AudioCodec string `json:"audio_codec,omitempty"`
	Channels   string `json:"channels,omitempty"`
	BitDepth   string `json:"bit_depth,omitempty"`
}

// IsZero reports whether no field is set.
func (i Info) IsZero() bool {
	return i == Info{}
}

// Runner executes a command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Extractor probes files with ffprobe.
type Extractor struct {
	ffprobe  string
	run      Runner
	lookPath func(string) (string, error)
	log      *slog.Logger

	once      sync.Once
	available bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRunner replaces command execution (for testing).
func WithRunner(r Runner) Option {
	return func(e *Extractor) {
		e.run = r
	}
}

// WithLookPath replaces binary discovery (for testing).
func WithLookPath(fn func(string) (string, error)) Option {
	return func(e *Extractor) {
		e.lookPath = fn
	}
}

// New creates an Extractor. An empty ffprobePath means "ffprobe" on PATH.
func New(ffprobePath string, log *slog.Logger, opts ...Option) *Extractor {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	e := &Extractor{
		ffprobe:  ffprobePath,
		run:      execRunner,
		lookPath: exec.LookPath,
		log:      log.With("component", "mediainfo"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Available reports whether ffprobe can be executed. The lookup happens once.
func (e *Extractor) Available() bool {
	e.once.Do(func() {
		_, err := e.lookPath(e.ffprobe)
		e.available = err == nil
		if !e.available {
			e.log.Info("ffprobe not found, technical info will come from filenames", "path", e.ffprobe)
		}
	})
	return e.available
}

// Extract returns the technical info of a file. Probe failures are not errors:
// the filename tokens are returned instead. Only context cancellation is reported.
func (e *Extractor) Extract(ctx context.Context, path string) (Info, error) {
	fallback := FromFilename(path)
	if !e.Available() {
		return fallback, nil
	}

	out, err := e.run(ctx, e.ffprobe, "-v", "quiet", "-print_format", "json", "-show_streams", path)
	if err != nil {
		if ctx.Err() != nil {
			return fallback, ctx.Err()
		}
		e.log.Debug("ffprobe failed", "file", path, "error", err)
		return fallback, nil
	}

	probed, err := parseProbe(out)
	if err != nil {
		e.log.Debug("unreadable ffprobe output", "file", path, "error", err)
		return fallback, nil
	}
	return probed.fill(fallback), nil
}

// FromFilename derives technical info from release tokens in the filename.
func FromFilename(path string) Info {
	t := release.ParseTech(filepath.Base(path))
	return Info{
		Resolution: t.Resolution.String(),
		VideoCodec: t.Codec.String(),
		AudioCodec: t.Audio.String(),
		Channels:   t.Channels,
		BitDepth:   t.BitDepth,
	}
}

// fill copies fields from other where i has none.
func (i Info) fill(other Info) Info {
	if i.Resolution == "" {
		i.Resolution = other.Resolution
	}
	if i.VideoCodec == "" {
		i.VideoCodec = other.VideoCodec
	}
	if i.AudioCodec == "" {
		i.AudioCodec = other.AudioCodec
	}
	if i.Channels == "" {
		i.Channels = other.Channels
	}
	if i.BitDepth == "" {
		i.BitDepth = other.BitDepth
	}
	return i
}

type probeOutput struct {
	Streams []struct {
		CodecType        string `json:"codec_type"`
		CodecName        string `json:"codec_name"`
		CodecTag         string `json:"codec_tag_string"`
		Profile          string `json:"profile"`
		Height           int    `json:"height"`
		Channels         int    `json:"channels"`
		BitsPerRawSample string `json:"bits_per_raw_sample"`
		PixFmt           string `json:"pix_fmt"`
	} `json:"streams"`
}

func parseProbe(data []byte) (Info, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return Info{}, fmt.Errorf("decode ffprobe output: %w", err)
	}

	var info Info
	var haveVideo, haveAudio bool
	for _, s := range out.Streams {
		switch {
		case s.CodecType == "video" && !haveVideo:
			haveVideo = true
			if s.Height > 0 {
				info.Resolution = ResolutionLabel(s.Height)
			}
			info.VideoCodec = VideoCodecLabel(s.CodecName)
			info.BitDepth = bitDepth(s.BitsPerRawSample, s.PixFmt)
		case s.CodecType == "audio" && !haveAudio:
			haveAudio = true
			name := s.CodecName
			if s.Profile != "" && strings.HasPrefix(strings.ToUpper(s.Profile), "DTS") {
				name = s.Profile
			}
			info.AudioCodec = AudioCodecLabel(name)
			if s.Channels > 0 {
				info.Channels = ChannelsLabel(s.Channels)
			}
		}
	}
	return info, nil
}

// ResolutionLabel buckets a frame height into the usual p-labels.
func ResolutionLabel(height int) string {
	switch {
	case height >= 2160:
		return "2160p"
	case height >= 1440:
		return "1440p"
	case height >= 1080:
		return "1080p"
	case height >= 720:
		return "720p"
	case height >= 480:
		return "480p"
	default:
		return strconv.Itoa(height) + "p"
	}
}

// VideoCodecLabel normalizes a codec name. Unknown names pass through.
func VideoCodecLabel(codec string) string {
	up := strings.ToUpper(codec)
	switch {
	case up == "":
		return ""
	case strings.Contains(up, "AVC"), strings.Contains(up, "H264"), strings.Contains(up, "X264"):
		return "AVC"
	case strings.Contains(up, "HEVC"), strings.Contains(up, "H265"), strings.Contains(up, "X265"):
		return "HEVC"
	case strings.Contains(up, "MPEG"):
		return "MPEG"
	case strings.Contains(up, "VP9"):
		return "VP9"
	case strings.Contains(up, "VP8"):
		return "VP8"
	default:
		return codec
	}
}

// AudioCodecLabel normalizes an audio codec name. Unknown names pass through.
func AudioCodecLabel(codec string) string {
	up := strings.ToUpper(codec)
	switch {
	case up == "":
		return ""
	case strings.Contains(up, "DTS"):
		return "DTS"
	case strings.Contains(up, "AC3"), strings.Contains(up, "DOLBY"):
		return "AC3"
	case strings.Contains(up, "AAC"):
		return "AAC"
	case strings.Contains(up, "MP3"):
		return "MP3"
	case strings.Contains(up, "FLAC"):
		return "FLAC"
	case strings.Contains(up, "OPUS"):
		return "OPUS"
	default:
		return codec
	}
}

// ChannelsLabel maps a channel count to layout notation.
func ChannelsLabel(n int) string {
	switch n {
	case 2:
		return "2.0"
	case 6:
		return "5.1"
	case 8:
		return "7.1"
	default:
		return strconv.Itoa(n)
	}
}

func bitDepth(raw, pixFmt string) string {
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return strconv.Itoa(n) + "bit"
	}
	switch {
	case strings.Contains(pixFmt, "12le"), strings.Contains(pixFmt, "12be"):
		return "12bit"
	case strings.Contains(pixFmt, "10le"), strings.Contains(pixFmt, "10be"):
		return "10bit"
	default:
		return ""
	}
}
