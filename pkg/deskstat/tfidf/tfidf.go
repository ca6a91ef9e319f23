// Package tfidf scores word importance per document group, where a
// "document" is any logical grouping key (a portfolio, a year).
package tfidf

import (
	"fmt"
	"math"
	"sort"

	"github.com/quantpress/deskstat/pkg/deskstat/internalerr"
)

// Corpus accumulates (word, document) occurrence counts.
type Corpus struct {
	counts map[string]map[string]int64 // doc -> word -> count
	totals map[string]int64            // doc -> total words
	df     map[string]int64            // word -> documents containing it
}

// NewCorpus creates an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{
		counts: make(map[string]map[string]int64),
		totals: make(map[string]int64),
		df:     make(map[string]int64),
	}
}

// Add records n occurrences of word in doc.
func (c *Corpus) Add(doc, word string, n int64) {
	if doc == "" || word == "" || n <= 0 {
		return
	}
	if c.counts[doc] == nil {
		c.counts[doc] = make(map[string]int64)
	}
	if c.counts[doc][word] == 0 {
		c.df[word]++
	}
	c.counts[doc][word] += n
	c.totals[doc] += n
}

// AddTokens records every token of one document's text.
func (c *Corpus) AddTokens(doc string, tokens []string) {
	for _, tok := range tokens {
		c.Add(doc, tok, 1)
	}
}

// Documents returns the number of distinct documents seen.
func (c *Corpus) Documents() int { return len(c.counts) }

// Score is the tf-idf of one (document, word) pair.
type Score struct {
	Doc   string
	Word  string
	Count int64
	TF    float64
	IDF   float64
	TFIDF float64
}

// IDF returns the inverse document frequency of a word:
// -ln(documents containing word / total documents). A word present in
// every document has IDF exactly 0. A word present in no document
// cannot occur in a well-formed corpus; asking for one is a structural
// error, not a silent zero.
func (c *Corpus) IDF(word string) (float64, error) {
	df := c.df[word]
	if df == 0 {
		return 0, fmt.Errorf("idf of word %q absent from corpus: %w", word, internalerr.ErrStructural)
	}
	n := int64(len(c.counts))
	if df == n {
		return 0, nil // ubiquitous word, exactly zero
	}
	return -math.Log(float64(df) / float64(n)), nil
}

// Scores computes tf-idf for every (document, word) pair in the corpus,
// ordered by document then descending score.
func (c *Corpus) Scores() []Score {
	var out []Score
	for doc, words := range c.counts {
		total := c.totals[doc]
		for word, count := range words {
			idf, err := c.IDF(word)
			if err != nil {
				continue // unreachable: every counted word has df >= 1
			}
			tf := float64(count) / float64(total)
			out = append(out, Score{
				Doc:   doc,
				Word:  word,
				Count: count,
				TF:    tf,
				IDF:   idf,
				TFIDF: tf * idf,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Doc != out[j].Doc {
			return out[i].Doc < out[j].Doc
		}
		if out[i].TFIDF != out[j].TFIDF {
			return out[i].TFIDF > out[j].TFIDF
		}
		return out[i].Word < out[j].Word
	})
	return out
}

// TopWords returns the n highest-scoring words for one document.
func (c *Corpus) TopWords(doc string, n int) []Score {
	var out []Score
	for _, s := range c.Scores() {
		if s.Doc != doc {
			continue
		}
		out = append(out, s)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}
