package knowledge

import (
	"sort"
	"strings"

	"github.com/tinkerloft/promptshape/internal/model"
)

// RankScored scores every corpus entry against query and returns up to k
// results with their scores, highest first.
//
// The score of an entry is the number of whitespace-separated, lower-cased
// query tokens that occur as substrings of the entry's lower-cased
// "title info" text. Tokens are not deduplicated, so a repeated word counts
// once per occurrence. Entries scoring zero are dropped and equal scores keep
// corpus order.
func RankScored(query string, corpus *Corpus, k int) []model.RankedResult {
	if corpus == nil || k <= 0 {
		return nil
	}
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil
	}

	var results []model.RankedResult
	for _, entry := range corpus.entries {
		text := strings.ToLower(entry.Title + " " + entry.Info)
		score := 0
		for _, tok := range tokens {
			if strings.Contains(text, tok) {
				score++
			}
		}
		if score > 0 {
			results = append(results, model.RankedResult{Entry: entry, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

// Rank returns up to k entries from corpus ordered by relevance to query.
// No match and an empty query both yield an empty result.
func Rank(query string, corpus *Corpus, k int) []model.KnowledgeEntry {
	ranked := RankScored(query, corpus, k)
	if len(ranked) == 0 {
		return nil
	}
	entries := make([]model.KnowledgeEntry, len(ranked))
	for i, r := range ranked {
		entries[i] = r.Entry
	}
	return entries
}
