package model

// Bot strategy names as accepted over the wire
const (
	BotStrategyGreedy = "greedy"
	BotStrategyRandom = "random"
)

var botStrategyLabels = map[string]string{
	BotStrategyGreedy: "Greedy",
	BotStrategyRandom: "Random",
}

// BotStrategyDisplayName returns a human-readable label for a strategy
func BotStrategyDisplayName(strategy string) string {
	if label, ok := botStrategyLabels[strategy]; ok {
		return label
	}
	return strategy
}

// ValidBotStrategies returns all recognized bot strategy names
func ValidBotStrategies() []string {
	return []string{BotStrategyGreedy, BotStrategyRandom}
}
