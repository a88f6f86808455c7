// package mood maps free-form mood text to a canonical mood bucket.
package mood

import "strings"

// Bucket is a canonical mood category.
type Bucket string

const (
	Happy     Bucket = "happy"
	Sad       Bucket = "sad"
	Energetic Bucket = "energetic"
	Relaxed   Bucket = "relaxed"
)

// Buckets lists all buckets in declared order. The order is the
// tie-break rule for multi-mood phrases: the first bucket whose synonym
// matches wins, so "happy but a bit sad" resolves to Happy.
var Buckets = []Bucket{Happy, Sad, Energetic, Relaxed}

// synonyms holds each bucket's synonym list in declared order.
// Order matters within a bucket too: the first containment hit wins.
var synonyms = map[Bucket][]string{
	Happy:     {"happy", "joy", "cheerful", "upbeat", "glad"},
	Sad:       {"sad", "blue", "melancholy", "lonely"},
	Energetic: {"energetic", "excited", "active", "lively"},
	Relaxed:   {"relaxed", "calm", "chill", "peaceful", "serene"},
}

// Normalize maps free text to a Bucket.
//
// Pass 1 checks the whole trimmed, lowercased input for an exact
// synonym match; pass 2 scans buckets in declared order for the first
// synonym contained in the input. Anything unmatched defaults to Happy.
func Normalize(text string) Bucket {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return Happy
	}

	for _, bucket := range Buckets {
		for _, syn := range synonyms[bucket] {
			if t == syn {
				return bucket
			}
		}
	}

	for _, bucket := range Buckets {
		for _, syn := range synonyms[bucket] {
			if strings.Contains(t, syn) {
				return bucket
			}
		}
	}

	return Happy
}

// Synonyms returns the synonym list for a bucket, in declared order.
func Synonyms(b Bucket) []string {
	return synonyms[b]
}

// Title returns the bucket name with an upper-case first letter, for display.
func (b Bucket) Title() string {
	s := string(b)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
