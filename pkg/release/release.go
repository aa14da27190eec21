// Package release parses media filenames into a structured guess of what they contain.
package release

// Info is the structured guess for a single filename.
// IsTV implies Season and Episode are set; otherwise both are nil.
type Info struct {
	Title   string `json:"title"`
	Year    *int   `json:"year,omitempty"`
	Season  *int   `json:"season,omitempty"`
	Episode *int   `json:"episode,omitempty"`
	IsTV    bool   `json:"is_tv"`
}

// Resolution is the video resolution advertised in a filename.
type Resolution int

const (
	ResolutionUnknown Resolution = iota
	Resolution480p
	Resolution576p
	Resolution720p
	Resolution1080p
	Resolution2160p
)

var resolutionNames = [...]string{
	Resolution480p:  "480p",
	Resolution576p:  "576p",
	Resolution720p:  "720p",
	Resolution1080p: "1080p",
	Resolution2160p: "2160p",
}

func (r Resolution) String() string {
	if r < 0 || int(r) >= len(resolutionNames) {
		return ""
	}
	return resolutionNames[r]
}

// Source is the release source tag.
type Source int

const (
	SourceUnknown Source = iota
	SourceBluRay
	SourceWEBDL
	SourceWEBRip
	SourceHDTV
	SourceDVD
)

var sourceNames = [...]string{
	SourceBluRay: "bluray",
	SourceWEBDL:  "webdl",
	SourceWEBRip: "webrip",
	SourceHDTV:   "hdtv",
	SourceDVD:    "dvd",
}

func (s Source) String() string {
	if s < 0 || int(s) >= len(sourceNames) {
		return ""
	}
	return sourceNames[s]
}

// Codec is the video codec named in a filename.
// String values use the same vocabulary as stream probing.
type Codec int

const (
	CodecUnknown Codec = iota
	CodecAVC
	CodecHEVC
	CodecXviD
	CodecVP9
	CodecAV1
)

var codecNames = [...]string{
	CodecAVC:  "AVC",
	CodecHEVC: "HEVC",
	CodecXviD: "XviD",
	CodecVP9:  "VP9",
	CodecAV1:  "AV1",
}

func (c Codec) String() string {
	if c < 0 || int(c) >= len(codecNames) {
		return ""
	}
	return codecNames[c]
}

// AudioCodec is the audio format named in a filename.
type AudioCodec int

const (
	AudioUnknown AudioCodec = iota
	AudioAAC
	AudioAC3
	AudioEAC3
	AudioDTS
	AudioDTSHD
	AudioTrueHD
	AudioFLAC
	AudioOpus
	AudioMP3
)

var audioNames = [...]string{
	AudioAAC:    "AAC",
	AudioAC3:    "AC3",
	AudioEAC3:   "EAC3",
	AudioDTS:    "DTS",
	AudioDTSHD:  "DTS-HD MA",
	AudioTrueHD: "TrueHD",
	AudioFLAC:   "FLAC",
	AudioOpus:   "OPUS",
	AudioMP3:    "MP3",
}

func (a AudioCodec) String() string {
	if a < 0 || int(a) >= len(audioNames) {
		return ""
	}
	return audioNames[a]
}

// Tech holds the technical tokens a filename advertises.
// It is the fallback when the file itself cannot be probed.
type Tech struct {
	Resolution Resolution
	Source     Source
	Codec      Codec
	Audio      AudioCodec
	Channels   string // 2.0, 5.1, 7.1
	BitDepth   string // 8bit, 10bit, 12bit
}
