// Package index holds the inverted index mapping terms to the titles of the
// studies that contain them. An Index is produced once by a Builder and is
// read-only afterwards, so it may be shared between goroutines without
// locking once it has been published.
package index

import (
	"slices"
	"sort"
)

// Builder accumulates postings. It is not safe for concurrent use.
type Builder struct {
	terms    map[string]PostingList
	studies  int
	postings int
	built    bool
}

func NewBuilder() *Builder {
	return &Builder{
		terms: make(map[string]PostingList),
	}
}

// Add records title under each term. terms must already be deduplicated for
// the study; a study with no terms is counted but leaves no postings.
func (b *Builder) Add(title string, terms []string) {
	if b.built {
		panic("index: Add called after Build")
	}
	b.studies++
	for _, term := range terms {
		b.terms[term] = append(b.terms[term], title)
		b.postings++
	}
}

// Build freezes the accumulated postings into an Index. The Builder must not
// be used afterwards.
func (b *Builder) Build() *Index {
	b.built = true
	return &Index{
		terms: b.terms,
		stats: Stats{
			Studies:  b.studies,
			Terms:    len(b.terms),
			Postings: b.postings,
		},
	}
}

// Index is an immutable term → postings mapping.
type Index struct {
	terms map[string]PostingList
	stats Stats
}

// Lookup returns a copy of the postings for term, or nil when the term is
// unknown.
func (idx *Index) Lookup(term string) PostingList {
	postings, ok := idx.terms[term]
	if !ok {
		return nil
	}
	return slices.Clone(postings)
}

func (idx *Index) Stats() Stats {
	return idx.stats
}

// Terms returns every indexed term in lexical order.
func (idx *Index) Terms() []string {
	terms := make([]string, 0, len(idx.terms))
	for term := range idx.terms {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
