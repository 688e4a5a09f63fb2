package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// classifyTimeout bounds the intent check; classification must stay fast and
// never hold up the conversational call path for long.
const classifyTimeout = 10 * time.Second

// IntentClassifier decides whether a prompt falls inside a consultant's
// topic scope by delegating to the generation backend with a single-purpose
// classification instruction.
type IntentClassifier struct {
	llm LLMService
}

// NewIntentClassifier creates a classifier on top of the given backend.
// Callers should pass a low-temperature client (see NewClassifierConfigFromProfile).
func NewIntentClassifier(llm LLMService) *IntentClassifier {
	return &IntentClassifier{llm: llm}
}

// IsRelevant reports whether the prompt is in scope for the given topics.
// The check fails open: any backend failure is logged and treated as
// relevant, so a transient classification error never blocks a legitimate
// request. This is a deliberate availability-over-precision tradeoff.
func (ic *IntentClassifier) IsRelevant(ctx context.Context, topicScope []string, prompt string) bool {
	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	instruction := buildIntentInstruction(topicScope, prompt)

	answer, err := ic.llm.Chat(ctx, []Message{UserMessage(instruction)})
	if err != nil {
		slog.Warn("intent check failed, allowing request through", "error", err)
		return true
	}

	return strings.ToUpper(strings.TrimSpace(answer)) == "YES"
}

func buildIntentInstruction(topicScope []string, prompt string) string {
	return fmt.Sprintf(`你是一個問題分類系統。
用戶的問題是關於：「%s」。
該問題的適用範圍是：%s。
請嚴格回答一個單字：如果問題相關，回答：YES；如果問題無關，回答：NO。
不要回答任何其他內容。`, prompt, strings.Join(topicScope, ", "))
}
