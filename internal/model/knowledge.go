// Package model contains the data types shared across promptshape.
package model

// KnowledgeEntry is a single piece of reference knowledge the retriever can surface.
type KnowledgeEntry struct {
	Title string `json:"title" yaml:"title"`
	Info  string `json:"info" yaml:"info"`
}

// String renders the entry the way it is injected into a prompt context block.
func (e KnowledgeEntry) String() string {
	return e.Title + ": " + e.Info
}

// RankedResult pairs an entry with its relevance score. Score is always >= 1;
// entries that score zero are never wrapped in a RankedResult.
type RankedResult struct {
	Entry KnowledgeEntry `json:"entry"`
	Score int            `json:"score"`
}
