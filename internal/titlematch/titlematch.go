// Package titlematch finds the closest library title for a watch record that
// could not be resolved. Suggestions are shown to the operator only; they are
// never used to pick a deletion target.
package titlematch

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinScore is the Jaro-Winkler similarity below which no suggestion is made.
const MinScore = 0.85

// romanNumeralRegex matches II-IX after a space, so "I Robot" and
// "American History X" are left alone.
var romanNumeralRegex = regexp.MustCompile(`(?i) (ii|iii|iv|v|vi|vii|viii|ix)\b`)

var romanToArabic = map[string]string{
	"II": "2", "III": "3", "IV": "4", "V": "5",
	"VI": "6", "VII": "7", "VIII": "8", "IX": "9",
}

// Clean normalizes a title for comparison: lowercase, accents removed,
// leading articles dropped, punctuation stripped, roman numerals converted.
func Clean(title string) string {
	s := strings.ToLower(title)
	s = romanNumeralRegex.ReplaceAllStringFunc(s, func(match string) string {
		if arabic, ok := romanToArabic[strings.ToUpper(strings.TrimSpace(match))]; ok {
			return " " + arabic
		}
		return match
	})
	s = removeAccents(s)

	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ".", " ")

	parts := strings.Split(s, ":")
	for i, part := range parts {
		parts[i] = stripLeadingArticle(part)
	}
	s = strings.Join(parts, " ")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

func stripLeadingArticle(s string) string {
	s = strings.TrimSpace(s)
	for _, art := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(s, art) {
			return strings.TrimPrefix(s, art)
		}
	}
	return s
}

// Suggestion is the closest candidate to a title.
type Suggestion struct {
	Title string
	Score float64
}

// Suggest returns the candidate most similar to title, or false when nothing
// scores at least MinScore.
func Suggest(title string, candidates []string) (Suggestion, bool) {
	want := Clean(title)
	if want == "" {
		return Suggestion{}, false
	}

	var best Suggestion
	for _, c := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(want, Clean(c)))
		if score > best.Score {
			best = Suggestion{Title: c, Score: score}
		}
	}
	if best.Score < MinScore {
		return Suggestion{}, false
	}
	return best, true
}
