// Package stopword blanks configured stop words out of short texts before they
// are vectorized. Filtering never changes the character length of a text.
package stopword

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultPlaceholder replaces every character of a matched stop word.
const DefaultPlaceholder = '_'

// Filter overwrites stop word occurrences character-for-character.
// A Filter without words is a passthrough. Safe for concurrent use after construction.
type Filter struct {
	words       []string
	placeholder rune
	normalize   bool
	replacer    *strings.Replacer
}

// Option configures a Filter.
type Option func(*Filter)

// WithPlaceholder sets the replacement character.
func WithPlaceholder(r rune) Option {
	return func(f *Filter) {
		f.placeholder = r
	}
}

// WithNormalization matches on the Unicode NFC form of texts and stop words.
// The returned text keeps its original characters; only matched spans are blanked.
func WithNormalization() Option {
	return func(f *Filter) {
		f.normalize = true
	}
}

// New builds a filter for words. Empty words are ignored.
// Longer words win over their own prefixes at the same position.
func New(words []string, opts ...Option) *Filter {
	f := &Filter{placeholder: DefaultPlaceholder}
	for _, o := range opts {
		o(f)
	}

	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if f.normalize {
			w = norm.NFC.String(w)
		}
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		f.words = append(f.words, w)
	}
	// strings.Replacer prefers earlier pairs at equal positions.
	sort.SliceStable(f.words, func(i, j int) bool {
		return utf8.RuneCountInString(f.words[i]) > utf8.RuneCountInString(f.words[j])
	})

	if len(f.words) > 0 {
		pairs := make([]string, 0, 2*len(f.words))
		for _, w := range f.words {
			blank := strings.Repeat(string(f.placeholder), utf8.RuneCountInString(w))
			pairs = append(pairs, w, blank)
		}
		f.replacer = strings.NewReplacer(pairs...)
	}
	return f
}

// Words returns the active stop words, longest first.
func (f *Filter) Words() []string {
	return append([]string(nil), f.words...)
}

// Placeholder returns the replacement character.
func (f *Filter) Placeholder() rune { return f.placeholder }

// Fingerprint identifies the filter setup. Filters that blank the same
// words the same way share a fingerprint. A nil or empty filter yields "".
func (f *Filter) Fingerprint() string {
	if f == nil || len(f.words) == 0 {
		return ""
	}
	h := sha256.New()
	fmt.Fprintf(h, "%q|%t|", f.placeholder, f.normalize)
	for _, w := range f.words {
		h.Write([]byte(w))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Apply returns text with every stop word occurrence blanked out.
// Characters outside matches keep their position.
func (f *Filter) Apply(text string) string {
	if f == nil || f.replacer == nil {
		return text
	}
	if f.normalize {
		return f.applyNormalized(text)
	}
	return f.replacer.Replace(text)
}

// applyNormalized matches on the NFC form and maps matches back onto the raw
// text segment by segment. A segment is a starter with its combining marks; if
// any of its normalized characters is matched, every raw character of the
// segment is blanked.
func (f *Filter) applyNormalized(text string) string {
	var (
		segments   []string
		owner      []int
		normalized strings.Builder
		it         norm.Iter
	)
	it.InitString(norm.NFC, text)
	for !it.Done() {
		start := it.Pos()
		seg := it.Next()
		segments = append(segments, text[start:it.Pos()])
		normalized.Write(seg)
		for n := utf8.RuneCount(seg); n > 0; n-- {
			owner = append(owner, len(segments)-1)
		}
	}

	in := normalized.String()
	out := f.replacer.Replace(in)
	touched := make([]bool, len(segments))
	for i := 0; in != ""; i++ {
		a, na := utf8.DecodeRuneInString(in)
		b, nb := utf8.DecodeRuneInString(out)
		if a != b {
			touched[owner[i]] = true
		}
		in, out = in[na:], out[nb:]
	}

	var sb strings.Builder
	sb.Grow(len(text))
	blank := string(f.placeholder)
	for i, seg := range segments {
		if touched[i] {
			sb.WriteString(strings.Repeat(blank, utf8.RuneCountInString(seg)))
			continue
		}
		sb.WriteString(seg)
	}
	return sb.String()
}

// ApplyAll filters every text in order.
func (f *Filter) ApplyAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = f.Apply(t)
	}
	return out
}

// LoadFile reads one stop word per line. Blank lines and surrounding whitespace are dropped.
func LoadFile(path string) ([]string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open stop words %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	var words []string
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w != "" {
			words = append(words, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stop words %s: %w", path, err)
	}
	return words, nil
}
