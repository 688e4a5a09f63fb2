package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/useadvisor/advisor/store"
)

// recordLabelRunes is how much of the first user turn is shown as a record's
// display label.
const recordLabelRunes = 15

type historyRequest struct {
	SessionID string `json:"sessionId"`
}

type historyTurn struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type historyResponse struct {
	SessionID    string        `json:"sessionId"`
	ConsultantID string        `json:"consultantId"`
	History      []historyTurn `json:"history"`
	LastUpdated  string        `json:"lastUpdated"`
}

type recordSummary struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type recordListResponse struct {
	TotalRecords int             `json:"totalRecords"`
	Records      []recordSummary `json:"records"`
}

// getSessionHistory returns the full persisted conversation for one session.
func (s *APIV1Service) getSessionHistory(c *echo.Context) error {
	var req historyRequest
	if err := c.Bind(&req); err != nil || req.SessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "錯誤：缺少 sessionId 參數")
	}

	ctx := c.Request().Context()
	record, err := s.Store.GetChatRecord(ctx, &store.FindChatRecord{SessionID: &req.SessionID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if record == nil {
		return echo.NewHTTPError(http.StatusNotFound, "找不到該 Session 的對話紀錄")
	}

	turns, err := s.Store.ListChatTurns(ctx, &store.FindChatTurn{RecordID: record.ID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	history := make([]historyTurn, 0, len(turns))
	for _, turn := range turns {
		history = append(history, historyTurn{
			Role:      string(turn.Role),
			Content:   turn.Text,
			Timestamp: time.Unix(turn.CreatedTs, 0).UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, historyResponse{
		SessionID:    record.SessionID,
		ConsultantID: record.ConsultantID,
		History:      history,
		LastUpdated:  time.Unix(record.UpdatedTs, 0).UTC().Format(time.RFC3339),
	})
}

// listAllRecords returns a label/value summary of every stored session,
// most recently updated first. The label is the head of the session's first
// user turn.
func (s *APIV1Service) listAllRecords(c *echo.Context) error {
	ctx := c.Request().Context()
	records, err := s.Store.ListChatRecords(ctx, &store.FindChatRecord{})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	roleUser := store.RoleUser
	one := 1
	summaries := make([]recordSummary, 0, len(records))
	for _, record := range records {
		turns, err := s.Store.ListChatTurns(ctx, &store.FindChatTurn{
			RecordID: record.ID,
			Role:     &roleUser,
			Limit:    &one,
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		var label string
		if len(turns) > 0 {
			label = headRunes(turns[0].Text, recordLabelRunes)
		}
		summaries = append(summaries, recordSummary{Label: label, Value: record.SessionID})
	}
	return c.JSON(http.StatusOK, recordListResponse{
		TotalRecords: len(records),
		Records:      summaries,
	})
}

func headRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
