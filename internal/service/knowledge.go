package service

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// KnowledgeBase is the static hotel document loaded once at startup. It is
// never mutated after load and its full serialized form is embedded into
// every concierge prompt. There is no size limiting on the document.
type KnowledgeBase struct {
	document   map[string]any
	serialized string
}

// LoadKnowledgeBase reads and parses the knowledge base JSON file. A load
// failure is fatal at startup; callers are expected to exit.
func LoadKnowledgeBase(path string, logger *zap.Logger) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}

	var document map[string]any
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base: %w", err)
	}

	serialized, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize knowledge base: %w", err)
	}

	logger.Info("Knowledge base loaded",
		zap.String("path", path),
		zap.Int("size_bytes", len(data)),
		zap.Int("top_level_keys", len(document)),
	)

	return &KnowledgeBase{
		document:   document,
		serialized: string(serialized),
	}, nil
}

// Serialized returns the prompt-ready form of the document.
func (kb *KnowledgeBase) Serialized() string {
	return kb.serialized
}
