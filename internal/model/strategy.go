package model

// Strategy is a prompting technique that maps a query to a conversation.
type Strategy string

const (
	StrategyZeroShot          Strategy = "ZeroShot"
	StrategyFewShot           Strategy = "FewShot"
	StrategyChainOfThought    Strategy = "ChainOfThought"
	StrategyMetaPrompting     Strategy = "MetaPrompting"
	StrategySelfConsistency   Strategy = "SelfConsistency"
	StrategyGenerateKnowledge Strategy = "GenerateKnowledge"
	StrategyPromptChaining    Strategy = "PromptChaining"
	StrategyRAG               Strategy = "RAG"

	// StrategyDefault is what any unrecognised identifier resolves to.
	// It behaves exactly like StrategyZeroShot.
	StrategyDefault Strategy = "Default"
)

// StrategyInfo describes a strategy for presentation.
type StrategyInfo struct {
	ID          Strategy `json:"id" yaml:"id"`
	Label       string   `json:"label" yaml:"label"`
	Description string   `json:"description" yaml:"description"`
}

// strategyInfos is ordered as strategies are offered to users.
var strategyInfos = []StrategyInfo{
	{StrategyZeroShot, "Zero-Shot", "Direct question-answer with no examples"},
	{StrategyFewShot, "Few-Shot", "Includes examples in the prompt to guide the model"},
	{StrategyChainOfThought, "Chain-of-Thought", "Encourages step-by-step reasoning"},
	{StrategyMetaPrompting, "Meta Prompting", "The model creates its own prompt first"},
	{StrategySelfConsistency, "Self Consistency", "Generates multiple approaches to find consensus"},
	{StrategyGenerateKnowledge, "Generate Knowledge", "Generates relevant facts before answering"},
	{StrategyPromptChaining, "Prompt Chaining", "Uses a sequence of prompts for complex questions"},
	{StrategyRAG, "RAG", "Retrieves information from a knowledge base before generating an answer"},
}

// strategyLookup accepts both canonical ids and display labels.
var strategyLookup = func() map[string]Strategy {
	m := make(map[string]Strategy, 2*len(strategyInfos))
	for _, info := range strategyInfos {
		m[string(info.ID)] = info.ID
		m[info.Label] = info.ID
	}
	return m
}()

// Strategies returns every known strategy in presentation order.
func Strategies() []StrategyInfo {
	out := make([]StrategyInfo, len(strategyInfos))
	copy(out, strategyInfos)
	return out
}

// ParseStrategy resolves an identifier to a known strategy. Matching is exact
// against the canonical id or the display label. Unknown identifiers return
// StrategyDefault and false.
func ParseStrategy(id string) (Strategy, bool) {
	s, ok := strategyLookup[id]
	if !ok {
		return StrategyDefault, false
	}
	return s, true
}

// Info returns the presentation details for s. StrategyDefault reports the
// ZeroShot details it aliases.
func (s Strategy) Info() StrategyInfo {
	for _, info := range strategyInfos {
		if info.ID == s {
			return info
		}
	}
	return strategyInfos[0]
}

// Label returns the display label of s.
func (s Strategy) Label() string {
	return s.Info().Label
}
