package release

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// romanRe matches II-IX after a space. A lone "I" or "X" and a leading numeral are left
// alone ("I Robot", "American History X", "VII Days").
var romanRe = regexp.MustCompile(`(?i) (ii|iii|iv|v|vi|vii|viii|ix)\b`)

var romanValues = map[string]string{
	"ii": "2", "iii": "3", "iv": "4", "v": "5",
	"vi": "6", "vii": "7", "viii": "8", "ix": "9",
}

var leadingArticles = []string{"the ", "a ", "an "}

// CleanTitle folds a title into a comparison key: lowercase, no accents,
// no leading articles, no punctuation, Arabic sequel numbers.
func CleanTitle(title string) string {
	s := romanRe.ReplaceAllStringFunc(strings.ToLower(title), func(m string) string {
		return " " + romanValues[strings.TrimSpace(m)]
	})
	s = foldAccents(s)

	s = strings.NewReplacer("&", " and ", "-", " ", "'", "", ".", " ", "_", " ").Replace(s)

	// "Léon: The Professional" has an article after the colon too.
	parts := strings.Split(s, ":")
	for i := range parts {
		parts[i] = trimArticle(strings.TrimSpace(parts[i]))
	}

	var b strings.Builder
	for _, r := range strings.Join(parts, " ") {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func trimArticle(s string) string {
	for _, art := range leadingArticles {
		if rest, ok := strings.CutPrefix(s, art); ok {
			return rest
		}
	}
	return s
}

// SearchQuery prepares a parsed title for a metadata search.
// Case and punctuation are kept; "&" becomes "and".
func SearchQuery(title string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(title, "&", "and")), " ")
}
