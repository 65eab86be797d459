package domain

// KeyPrefix namespaces every key prodsearch writes to the KV store.
const KeyPrefix = "prodsearch:"

// IntentConfig holds internal intent extraction settings, not exposed to clients.
type IntentConfig struct {
	Model       string
	ToolName    string
	MaxQueryLen int
	Temperature float32
}

// DefaultIntentConfig returns the default configuration for the OpenAI extractor.
func DefaultIntentConfig() IntentConfig {
	return IntentConfig{
		Model:       "gpt-4.1-mini",
		ToolName:    "search_products",
		MaxQueryLen: 2048,
		Temperature: 0,
	}
}
