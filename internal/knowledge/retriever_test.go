package knowledge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinkerloft/promptshape/internal/knowledge"
	"github.com/tinkerloft/promptshape/internal/model"
)

func titles(entries []model.KnowledgeEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}

func TestRank_NarutoQuery(t *testing.T) {
	results := knowledge.Rank("Who is the main character in Naruto?", knowledge.DefaultCorpus(), 2)
	require.Len(t, results, 2)
	assert.Equal(t, "Naruto", results[0].Title)
	// One Piece and Attack on Titan tie at 3; corpus order wins.
	assert.Equal(t, "One Piece", results[1].Title)
}

func TestRankScored_ScoresAndOrder(t *testing.T) {
	results := knowledge.RankScored("Who is the main character in Naruto?", knowledge.DefaultCorpus(), 10)
	require.Len(t, results, 5)

	var got []string
	var scores []int
	for _, r := range results {
		got = append(got, r.Entry.Title)
		scores = append(scores, r.Score)
	}
	assert.Equal(t, []string{"Naruto", "One Piece", "Attack on Titan", "Violet Evergarden", "Clannad"}, got)
	assert.Equal(t, []int{4, 3, 3, 2, 2}, scores)
}

func TestRank_EmptyQuery(t *testing.T) {
	assert.Empty(t, knowledge.Rank("", knowledge.DefaultCorpus(), 2))
	assert.Empty(t, knowledge.Rank("   \t\n", knowledge.DefaultCorpus(), 2))
}

func TestRank_NoMatches(t *testing.T) {
	assert.Empty(t, knowledge.Rank("zzqx vvbk", knowledge.DefaultCorpus(), 2))
}

func TestRank_ZeroScoresExcluded(t *testing.T) {
	results := knowledge.RankScored("hokage", knowledge.DefaultCorpus(), 5)
	require.Len(t, results, 1)
	assert.Equal(t, "Naruto", results[0].Entry.Title)
	assert.Equal(t, 1, results[0].Score)
}

func TestRank_DuplicateTokensCountTwice(t *testing.T) {
	results := knowledge.RankScored("luffy luffy", knowledge.DefaultCorpus(), 2)
	require.Len(t, results, 1)
	assert.Equal(t, "One Piece", results[0].Entry.Title)
	assert.Equal(t, 2, results[0].Score)
}

func TestRank_CaseInsensitive(t *testing.T) {
	results := knowledge.Rank("KYOTO", knowledge.DefaultCorpus(), 2)
	assert.Equal(t, []string{"Violet Evergarden"}, titles(results))
}

func TestRank_TiesKeepCorpusOrder(t *testing.T) {
	corpus := knowledge.NewCorpus([]model.KnowledgeEntry{
		{Title: "B", Info: "shared"},
		{Title: "A", Info: "shared"},
		{Title: "C", Info: "shared extra"},
	})
	assert.Equal(t, []string{"C", "B"}, titles(knowledge.Rank("shared extra", corpus, 2)))
	assert.Equal(t, []string{"B", "A", "C"}, titles(knowledge.Rank("shared", corpus, 3)))
}

func TestRank_LimitK(t *testing.T) {
	corpus := knowledge.DefaultCorpus()
	assert.Len(t, knowledge.Rank("manga", corpus, 2), 2)
	assert.Len(t, knowledge.Rank("manga", corpus, 1), 1)
	assert.Empty(t, knowledge.Rank("manga", corpus, 0))
	assert.Empty(t, knowledge.Rank("manga", nil, 2))
}

func TestRank_Deterministic(t *testing.T) {
	corpus := knowledge.DefaultCorpus()
	first := knowledge.RankScored("anime series created", corpus, 2)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, knowledge.RankScored("anime series created", corpus, 2))
	}
}
