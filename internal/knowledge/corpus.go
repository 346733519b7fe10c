// Package knowledge holds the read-only knowledge corpus and the keyword
// retriever that ranks it against a query.
package knowledge

import (
	"github.com/tinkerloft/promptshape/internal/model"
)

// Corpus is an ordered, immutable list of knowledge entries. Order is
// significant: it breaks ties when ranking. A Corpus is safe for concurrent
// use because nothing mutates it after NewCorpus returns.
type Corpus struct {
	entries []model.KnowledgeEntry
}

// NewCorpus copies entries into a new Corpus.
func NewCorpus(entries []model.KnowledgeEntry) *Corpus {
	owned := make([]model.KnowledgeEntry, len(entries))
	copy(owned, entries)
	return &Corpus{entries: owned}
}

// Len returns the number of entries.
func (c *Corpus) Len() int {
	return len(c.entries)
}

// At returns the entry at position i.
func (c *Corpus) At(i int) model.KnowledgeEntry {
	return c.entries[i]
}

// Entries returns a copy of the entries in corpus order.
func (c *Corpus) Entries() []model.KnowledgeEntry {
	out := make([]model.KnowledgeEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

var animeEntries = []model.KnowledgeEntry{
	{
		Title: "Naruto",
		Info:  "A manga/anime series about a young ninja named Naruto Uzumaki who seeks recognition and dreams of becoming the Hokage. Created by Masashi Kishimoto.",
	},
	{
		Title: "One Piece",
		Info:  "A manga/anime series about Monkey D. Luffy and his crew searching for the world's ultimate treasure, the 'One Piece'. Created by Eiichiro Oda.",
	},
	{
		Title: "Attack on Titan",
		Info:  "A manga/anime series set in a world where humanity lives within cities surrounded by enormous walls due to the Titans. Created by Hajime Isayama.",
	},
	{
		Title: "Violet Evergarden",
		Info:  "An anime series about Violet Evergarden, a former soldier who becomes a letter writer to understand the last words of her mentor. Produced by Kyoto Animation.",
	},
	{
		Title: "Clannad",
		Info:  "A visual novel and anime series following Tomoya Okazaki as he forms relationships with various girls in his school. Famous for its emotional storytelling.",
	},
}

var defaultCorpus = NewCorpus(animeEntries)

// DefaultCorpus returns the built-in anime corpus. The same instance is
// returned on every call.
func DefaultCorpus() *Corpus {
	return defaultCorpus
}
