// Package search ranks listings against free-text queries with an immutable
// in-memory keyword index. An Index is safe for concurrent use.
//
// Each listing becomes one document made of its title, area, type and
// description. Tokens are lower-cased and stripped of diacritics, so "Ọkpẹ"
// matches "okpe". The score is the Jaccard similarity of the query and
// document token sets: |Q ∩ D| / |Q ∪ D|.
package search

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
)

// Result is a ranked listing id with its similarity score.
type Result struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Index answers top-k queries.
type Index interface {
	TopK(query string, k int) []Result
	Len() int
}

// DefaultK is used when TopK is called with k <= 0.
const DefaultK = 10

// DefaultStopwords are dropped from both documents and queries.
var DefaultStopwords = []string{
	"a", "an", "and", "the", "in", "of", "for", "with", "to", "at", "on", "is",
}

// Option configures NewListingIndex.
type Option func(*options)

type options struct {
	stop    set
	maxDocs int
}

// WithStopwords drops words from documents and queries. Blank entries are
// ignored; an empty list keeps the default of no stopwords.
func WithStopwords(words []string) Option {
	return func(o *options) {
		s := set{}
		for _, w := range words {
			if w = fold(strings.TrimSpace(w)); w != "" {
				s[w] = struct{}{}
			}
		}
		if len(s) > 0 {
			o.stop = s
		}
	}
}

// WithMaxDocs caps how many listings are indexed. n <= 0 means no cap.
func WithMaxDocs(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDocs = n
		}
	}
}

type set map[string]struct{}

type doc struct {
	id     string
	order  int
	tokens set
}

type listingIndex struct {
	stop set
	docs []doc
}

// Text returns the searchable text of a listing.
func Text(l domain.Listing) string {
	return strings.Join([]string{l.Title, l.Area, l.Type, l.Description}, " ")
}

// NewListingIndex builds an Index over ls. Listings without any token are
// skipped.
func NewListingIndex(ls []domain.Listing, opts ...Option) Index {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	idx := &listingIndex{stop: o.stop, docs: make([]doc, 0, len(ls))}
	for i, l := range ls {
		if o.maxDocs > 0 && len(idx.docs) == o.maxDocs {
			break
		}
		if toks := tokenize(Text(l), o.stop); len(toks) > 0 {
			idx.docs = append(idx.docs, doc{id: l.ID, order: i, tokens: toks})
		}
	}
	return idx
}

func (x *listingIndex) Len() int { return len(x.docs) }

// TopK returns up to k listings by descending score. Equal scores keep the
// order the index was built from.
func (x *listingIndex) TopK(q string, k int) []Result {
	if k <= 0 {
		k = DefaultK
	}
	qt := tokenize(q, x.stop)
	if len(qt) == 0 || len(x.docs) == 0 {
		return nil
	}

	type hit struct {
		Result
		order int
	}
	var hits []hit
	for _, d := range x.docs {
		n := common(qt, d.tokens)
		if n == 0 {
			continue
		}
		score := float64(n) / float64(len(qt)+len(d.tokens)-n)
		hits = append(hits, hit{Result{ID: d.id, Score: score}, d.order})
	}
	slices.SortFunc(hits, func(a, b hit) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})

	if len(hits) == 0 {
		return nil
	}
	out := make([]Result, min(k, len(hits)))
	for i := range out {
		out[i] = hits[i].Result
	}
	return out
}

var wordRE = regexp.MustCompile(`[\p{L}\p{N}]+`)

// fold lower-cases s and removes diacritics. The transformer chain is
// stateful, so each call builds its own.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

func tokenize(s string, stop set) set {
	words := wordRE.FindAllString(fold(s), -1)
	if len(words) == 0 {
		return nil
	}
	out := make(set, len(words))
	for _, w := range words {
		if _, skip := stop[w]; !skip {
			out[w] = struct{}{}
		}
	}
	return out
}

func common(a, b set) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}
