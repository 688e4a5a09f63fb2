package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatMessages(t *testing.T) {
	history := []Message{
		UserMessage("第一個問題"),
		AssistantMessage("第一個回答"),
	}
	messages := FormatMessages("你是一位財務顧問。", "第二個問題", history)

	require.Len(t, messages, 4)
	require.Equal(t, Message{Role: "system", Content: "你是一位財務顧問。"}, messages[0])
	require.Equal(t, history[0], messages[1])
	require.Equal(t, history[1], messages[2])
	require.Equal(t, Message{Role: "user", Content: "第二個問題"}, messages[3])
}

func TestFormatMessagesWithoutSystemPrompt(t *testing.T) {
	messages := FormatMessages("", "問題", nil)
	require.Len(t, messages, 1)
	require.Equal(t, "user", messages[0].Role)
}

func TestConvertMessages(t *testing.T) {
	converted := convertMessages([]Message{
		SystemPrompt("instruction"),
		UserMessage("question"),
		AssistantMessage("answer"),
	})

	require.Len(t, converted, 3)
	require.Equal(t, "system", string(converted[0].Role))
	require.Equal(t, "human", string(converted[1].Role))
	require.Equal(t, "ai", string(converted[2].Role))
}
