package release

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// qualityTags are the tokens that may follow a bare year in a movie filename.
// A year is only trusted mid-name when one of these (or a bracket or dash) follows it,
// so "The 1000 Show" stays a title.
const qualityTags = `2160p|1080p|1080i|720p|576p|480p|4k|uhd|x264|x265|h\.?264|h\.?265|hevc|avc|xvid|divx|` +
	`bluray|blu-ray|bdrip|brrip|web-?dl|webrip|web|hdtv|hdrip|dvdrip|dvd|remux|10bit|proper|repack|extended|unrated`

// Rules are tried in this order; the first match wins.
var (
	tvSeasonEpisodeRe = regexp.MustCompile(`(?i)^(.+?)[._\s-]+S(\d{1,2})E(\d{1,2})`)
	tvCrossRe         = regexp.MustCompile(`(?i)^(.+?)[._\s-]+(\d{1,2})x(\d{1,2})`)
	movieParenYearRe  = regexp.MustCompile(`^(.+?)[._\s]\((\d{4})\)`)
	movieTaggedYearRe = regexp.MustCompile(`(?i)^(.+?)[._\s](\d{4})(?:[._\s]+(?:` + qualityTags + `)(?:[^a-z0-9]|$)|[._\s]*[\[(-])`)
	movieTrailYearRe  = regexp.MustCompile(`^(.+?)[._\s](\d{4})$`)

	separatorRunRe = regexp.MustCompile(`[._]+`)
)

// Parse turns a filename into a structured guess. It never fails: when no rule
// matches, the whole stem becomes the title.
func Parse(filename string) *Info {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	for _, re := range []*regexp.Regexp{tvSeasonEpisodeRe, tvCrossRe} {
		if m := re.FindStringSubmatch(stem); m != nil {
			season, _ := strconv.Atoi(m[2])
			episode, _ := strconv.Atoi(m[3])
			return &Info{
				Title:   cleanName(m[1]),
				Season:  &season,
				Episode: &episode,
				IsTV:    true,
			}
		}
	}

	for _, re := range []*regexp.Regexp{movieParenYearRe, movieTaggedYearRe, movieTrailYearRe} {
		if m := re.FindStringSubmatch(stem); m != nil {
			year, _ := strconv.Atoi(m[2])
			return &Info{Title: cleanName(m[1]), Year: &year}
		}
	}

	return &Info{Title: cleanName(stem)}
}

// cleanName turns dot and underscore separators into spaces.
func cleanName(s string) string {
	return strings.TrimSpace(separatorRunRe.ReplaceAllString(s, " "))
}

var (
	channelsRe = regexp.MustCompile(`(?:^|[^0-9])([2578])[. ]([01])(?:[^0-9]|$)`)
	bitDepthRe = regexp.MustCompile(`(?i)\b(8|10|12)[ -]?bit\b`)
)

// ParseTech extracts the technical tokens advertised in a filename. Only the
// part after the title is searched, so title words never become tags.
func ParseTech(filename string) Tech {
	name := strings.ToLower(filepath.Base(filename))
	name = tagRegion(strings.TrimSuffix(name, filepath.Ext(name)))

	t := Tech{
		Resolution: matchTag(name, resolutionTags),
		Source:     matchTag(name, sourceTags),
		Codec:      matchTag(name, codecTags),
		Audio:      matchTag(name, audioTags),
	}
	if m := channelsRe.FindStringSubmatch(name); m != nil {
		t.Channels = m[1] + "." + m[2]
	}
	if m := bitDepthRe.FindStringSubmatch(name); m != nil {
		t.BitDepth = m[1] + "bit"
	}
	return t
}

// tagRegion returns what follows the title when a parse rule finds one, and
// the whole stem otherwise.
func tagRegion(stem string) string {
	for _, re := range []*regexp.Regexp{tvSeasonEpisodeRe, tvCrossRe, movieParenYearRe, movieTaggedYearRe, movieTrailYearRe} {
		if loc := re.FindStringSubmatchIndex(stem); loc != nil {
			return stem[loc[3]:]
		}
	}
	return stem
}

type tagRule[T any] struct {
	re  *regexp.Regexp
	val T
}

// tags matches any of the given tokens as a whole word. Trailing digits are
// allowed so "ddp5.1" and "aac2.0" still match.
func tags(tokens ...string) *regexp.Regexp {
	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = regexp.QuoteMeta(tok)
	}
	return regexp.MustCompile(`(?:^|[^a-z0-9])(?:` + strings.Join(quoted, "|") + `)(?:[^a-z]|$)`)
}

func matchTag[T any](name string, rules []tagRule[T]) T {
	for _, r := range rules {
		if r.re.MatchString(name) {
			return r.val
		}
	}
	var zero T
	return zero
}

// Rules are tried in order; the first match wins.
var (
	resolutionTags = []tagRule[Resolution]{
		{tags("2160p", "4k", "uhd"), Resolution2160p},
		{tags("1080p", "1080i"), Resolution1080p},
		{tags("720p"), Resolution720p},
		{tags("576p"), Resolution576p},
		{tags("480p"), Resolution480p},
	}
	sourceTags = []tagRule[Source]{
		{tags("bluray", "blu-ray", "bdrip", "brrip", "remux"), SourceBluRay},
		{tags("web-dl", "webdl"), SourceWEBDL},
		{tags("webrip", "web-rip"), SourceWEBRip},
		{tags("hdtv"), SourceHDTV},
		{tags("dvdrip", "dvd"), SourceDVD},
	}
	codecTags = []tagRule[Codec]{
		{tags("x265", "h265", "h.265", "hevc"), CodecHEVC},
		{tags("x264", "h264", "h.264", "avc"), CodecAVC},
		{tags("xvid", "divx"), CodecXviD},
		{tags("vp9"), CodecVP9},
		{tags("av1"), CodecAV1},
	}
	audioTags = []tagRule[AudioCodec]{
		{tags("truehd", "atmos"), AudioTrueHD},
		{tags("dts-hd", "dtshd", "dts-ma", "dts.hd"), AudioDTSHD},
		{tags("dts"), AudioDTS},
		{tags("eac3", "ddp", "dd+"), AudioEAC3},
		{tags("ac3", "dd5", "dolby"), AudioAC3},
		{tags("flac"), AudioFLAC},
		{tags("opus"), AudioOpus},
		{tags("aac"), AudioAAC},
		{tags("mp3"), AudioMP3},
	}
)
