package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/useadvisor/advisor/plugin/ai"
	"github.com/useadvisor/advisor/store"
)

type streamRequest struct {
	Prompt       string `json:"prompt"`
	SessionID    string `json:"sessionId"`
	ConsultantID string `json:"consultantId"`
}

// handleChatStream drives one full chat exchange over SSE: resolve the
// consultant, gate on topic relevance, rebuild or reuse the live context,
// forward generation fragments as they arrive, then persist the completed
// exchange. HTTP status errors are only possible before the SSE headers go
// out; after that every failure is reported as an in-stream error event.
func (s *APIV1Service) handleChatStream(c *echo.Context) error {
	var req streamRequest
	if err := c.Bind(&req); err != nil ||
		strings.TrimSpace(req.Prompt) == "" || req.SessionID == "" || req.ConsultantID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "錯誤: 缺少 prompt, sessionId 或 consultantId。")
	}

	ctx := c.Request().Context()

	consultant, err := s.Store.GetConsultant(ctx, &store.FindConsultant{ConsultantID: &req.ConsultantID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if consultant == nil {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("錯誤: 找不到顧問 ID: %s", req.ConsultantID))
	}

	requestID := uuid.NewString()
	slog.Info("chat request received",
		"requestId", requestID,
		"consultant", consultant.Name,
		"sessionId", req.SessionID,
		"prompt", truncateRunes(req.Prompt, 30))

	relevant := s.Classifier.IsRelevant(ctx, consultant.TopicScope, req.Prompt)

	rw := c.Response()
	rw.Header().Set("Content-Type", "text/event-stream")
	rw.Header().Set("Cache-Control", "no-cache")
	rw.Header().Set("Connection", "keep-alive")
	rw.Header().Set("X-Accel-Buffering", "no")
	rw.WriteHeader(http.StatusOK)

	emit := func(payload map[string]string) {
		data, _ := json.Marshal(payload)
		fmt.Fprintf(rw, "data: %s\n\n", data)
		if f, ok := rw.(http.Flusher); ok {
			f.Flush()
		}
	}

	if !relevant {
		emit(map[string]string{
			"type": "error",
			"message": fmt.Sprintf(
				"對不起，我是%s。您的問題似乎與我的專業領域（%s）無關。請針對%s的服務範圍提問，或切換至其他顧問。",
				consultant.Name, strings.Join(consultant.TopicScope, "、"), consultant.Name),
		})
		return nil
	}

	// The session lock is held until the exchange is fully persisted, so
	// concurrent requests for the same session cannot interleave.
	handle := s.Sessions.Acquire(req.SessionID)
	defer handle.Release()

	record, err := s.Store.GetChatRecord(ctx, &store.FindChatRecord{SessionID: &req.SessionID})
	if err != nil {
		emit(map[string]string{"type": "error", "message": "伺服器處理錯誤：無法讀取對話紀錄"})
		return nil
	}
	if record == nil {
		record, err = s.Store.CreateChatRecord(ctx, &store.ChatRecord{
			SessionID:    req.SessionID,
			ConsultantID: req.ConsultantID,
		})
		if err != nil {
			emit(map[string]string{"type": "error", "message": "伺服器處理錯誤：無法建立對話紀錄"})
			return nil
		}
	}

	live, err := handle.GetOrCreate(req.ConsultantID, consultant.SystemInstruction, func() ([]ai.Message, error) {
		return s.loadHistory(ctx, record.ID)
	})
	if err != nil {
		emit(map[string]string{"type": "error", "message": "伺服器處理錯誤：無法載入歷史紀錄"})
		return nil
	}

	contentCh, errCh := s.LLM.ChatStream(ctx, live.Messages(req.Prompt))

	var reply strings.Builder
	for content := range contentCh {
		if content == "" {
			continue
		}
		reply.WriteString(content)
		emit(map[string]string{"type": "text", "content": content})
	}

	if err := <-errCh; err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			// Client is gone. Nothing to emit, nothing to persist; fragments
			// already sent stand, the durable record is unchanged.
			slog.Info("chat stream canceled by client", "requestId", requestID, "sessionId", req.SessionID)
			return nil
		}
		slog.Error("chat stream failed",
			"requestId", requestID,
			"consultant", consultant.Name,
			"err", err)
		emit(map[string]string{"type": "error", "message": "伺服器處理錯誤：" + sanitizeBackendError(err)})
		return nil
	}

	if err := s.persistExchange(ctx, record, req, reply.String()); err != nil {
		slog.Error("failed to persist chat exchange",
			"requestId", requestID,
			"sessionId", req.SessionID,
			"err", err)
		// The live context may no longer match the durable record; drop it so
		// the next request rehydrates from what was actually stored.
		handle.Invalidate()
		emit(map[string]string{"type": "error", "message": "伺服器處理錯誤：紀錄儲存失敗"})
		return nil
	}
	live.AppendExchange(req.Prompt, reply.String())

	emit(map[string]string{"type": "final", "message": "串流完成，紀錄已儲存"})
	return nil
}

// loadHistory converts a record's persisted turns into priming messages.
func (s *APIV1Service) loadHistory(ctx context.Context, recordID int32) ([]ai.Message, error) {
	turns, err := s.Store.ListChatTurns(ctx, &store.FindChatTurn{RecordID: recordID})
	if err != nil {
		return nil, err
	}
	history := make([]ai.Message, 0, len(turns))
	for _, turn := range turns {
		if turn.Role == store.RoleModel {
			history = append(history, ai.AssistantMessage(turn.Text))
		} else {
			history = append(history, ai.UserMessage(turn.Text))
		}
	}
	return history, nil
}

// persistExchange commits the completed user/model pair and the record's
// consultant re-bind in one transaction. Partial replies never reach here
// and a failed write rolls back whole, so durable history only ever grows
// by complete user/model pairs.
func (s *APIV1Service) persistExchange(ctx context.Context, record *store.ChatRecord, req streamRequest, reply string) error {
	exchange := &store.CreateChatExchange{
		RecordID:  record.ID,
		SessionID: req.SessionID,
		UserText:  req.Prompt,
		ModelText: reply,
	}
	if record.ConsultantID != req.ConsultantID {
		exchange.ConsultantID = &req.ConsultantID
	}
	return s.Store.CreateChatExchange(ctx, exchange)
}

// sanitizeBackendError keeps provider error text out of client responses.
func sanitizeBackendError(err error) string {
	msg := err.Error()
	if len(msg) > 200 || strings.Contains(msg, "key") || strings.Contains(msg, "token") {
		return "生成服務暫時無法使用"
	}
	return msg
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
