// Package prompt turns a question into a two-turn conversation according to
// a prompting strategy.
package prompt

import (
	"fmt"
	"strings"

	"github.com/tinkerloft/promptshape/internal/model"
)

const (
	systemAnswer = "You are a knowledgeable anime assistant. Answer the user's questions accurately and concisely."

	//nolint:lll // Worked examples are kept on single lines.
	systemFewShot = systemAnswer + `
Here are some examples of how to answer questions:
User: Who is the main character in Naruto?
Assistant: Naruto Uzumaki is the main character in Naruto. This series is about a young ninja who seeks recognition from his peers and dreams of becoming the Hokage, the leader of his village. It was created by Masashi Kishimoto and has been adapted into various media, including anime and movies.
User: What is the most popular OST in Violet Evergarden?
Assistant: The most popular OST in Violet Evergarden is "Sincerely" by TRUE. This song is known for its emotional depth and connection to the series' themes of love and loss. It was created by Kyoto Animation and is based on the light novel series written by Kana Akatsuki and illustrated by Akiko Takase.
User: Who is the singer of 'Dango Daikazoku' in Clannad?
Assistant: Chata is the singer of 'Dango Daikazoku' in Clannad. This song is a recurring theme in the series and is associated with the characters' emotional journeys. It was created by Key and has been adapted into various media, including anime and movies.`

	systemChainOfThought    = "You are a knowledgeable anime assistant. Think step-by-step to answer the question accurately."
	systemMetaPrompting     = "You are a helpful assistant that creates effective prompts for anime questions."
	systemSelfConsistency   = "You are a knowledgeable anime assistant. Generate three different approaches to answering this question, then provide a final consensus answer."
	systemGenerateKnowledge = "You are a knowledgeable anime assistant."
	systemPromptChaining    = "You are a knowledgeable anime assistant that uses a multi-step process to answer questions."
	systemRAG               = "You are a knowledgeable anime assistant. Use the retrieved information to answer the question accurately."
)

// builder produces a conversation for one strategy. retrieved is only
// populated for strategies that set retrieves.
type builder struct {
	retrieves bool
	build     func(query string, retrieved []model.KnowledgeEntry) model.Conversation
}

var builders = map[model.Strategy]builder{
	model.StrategyZeroShot:          {build: zeroShot},
	model.StrategyDefault:           {build: zeroShot},
	model.StrategyFewShot:           {build: fewShot},
	model.StrategyChainOfThought:    {build: chainOfThought},
	model.StrategyMetaPrompting:     {build: metaPrompting},
	model.StrategySelfConsistency:   {build: selfConsistency},
	model.StrategyGenerateKnowledge: {build: generateKnowledge},
	model.StrategyPromptChaining:    {build: promptChaining},
	model.StrategyRAG:               {build: rag, retrieves: true},
}

func zeroShot(query string, _ []model.KnowledgeEntry) model.Conversation {
	return model.NewConversation(systemAnswer, query)
}

func fewShot(query string, _ []model.KnowledgeEntry) model.Conversation {
	return model.NewConversation(systemFewShot, query)
}

func chainOfThought(query string, _ []model.KnowledgeEntry) model.Conversation {
	return model.NewConversation(systemChainOfThought,
		fmt.Sprintf("Question: %s\n\nLet's think through this step-by-step:", query))
}

func metaPrompting(query string, _ []model.KnowledgeEntry) model.Conversation {
	return model.NewConversation(systemMetaPrompting,
		fmt.Sprintf("The user wants to know about: '%s'. First, create an effective prompt for an anime assistant to answer this question. Then, answer the question using that prompt.", query))
}

func selfConsistency(query string, _ []model.KnowledgeEntry) model.Conversation {
	return model.NewConversation(systemSelfConsistency,
		fmt.Sprintf("Question: %s\n\nPlease provide three different approaches to answer this question, then give your final consensus answer.", query))
}

func generateKnowledge(query string, _ []model.KnowledgeEntry) model.Conversation {
	return model.NewConversation(systemGenerateKnowledge,
		fmt.Sprintf("Question: %s\n\nBefore answering, please list all relevant facts and knowledge about this topic. Then use that knowledge to provide a comprehensive answer.", query))
}

func promptChaining(query string, _ []model.KnowledgeEntry) model.Conversation {
	var sb strings.Builder
	sb.WriteString("\nQuestion: ")
	sb.WriteString(query)
	sb.WriteString("\n\nFollow these steps:\n")
	sb.WriteString("1. Identify the key terms and concepts in the question\n")
	sb.WriteString("2. Retrieve relevant background information about those terms\n")
	sb.WriteString("3. Formulate a complete answer using the background information\n")
	sb.WriteString("4. Present your final answer\n")
	sb.WriteString("\nPlease show your work for each step.\n")
	return model.NewConversation(systemPromptChaining, sb.String())
}

func rag(query string, retrieved []model.KnowledgeEntry) model.Conversation {
	var sb strings.Builder
	sb.WriteString("\nQuestion: ")
	sb.WriteString(query)
	sb.WriteString("\n\nHere is some relevant information that might help:\n")
	sb.WriteString(FormatContext(retrieved))
	sb.WriteString("\n\nPlease answer the question based on this information and your knowledge.\n")
	return model.NewConversation(systemRAG, sb.String())
}

// FormatContext renders retrieved entries as "title: info" blocks separated by
// blank lines. No entries render as the empty string.
func FormatContext(entries []model.KnowledgeEntry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.String()
	}
	return strings.Join(parts, "\n\n")
}
