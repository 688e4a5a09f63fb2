package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/useadvisor/advisor/store"
)

func (env *testEnv) getJSON(t *testing.T, path string, out any) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func seedExchange(t *testing.T, env *testEnv, sessionID, consultantID, prompt, reply string) {
	ctx := context.Background()
	record, err := env.store.GetChatRecord(ctx, &store.FindChatRecord{SessionID: &sessionID})
	require.NoError(t, err)
	if record == nil {
		record, err = env.store.CreateChatRecord(ctx, &store.ChatRecord{SessionID: sessionID, ConsultantID: consultantID})
		require.NoError(t, err)
	}
	_, err = env.store.CreateChatTurn(ctx, &store.CreateChatTurn{RecordID: record.ID, Role: store.RoleUser, Text: prompt})
	require.NoError(t, err)
	_, err = env.store.CreateChatTurn(ctx, &store.CreateChatTurn{RecordID: record.ID, Role: store.RoleModel, Text: reply})
	require.NoError(t, err)
}

func TestLiveness(t *testing.T) {
	env := newTestEnv(t)
	rec := env.getJSON(t, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Body.String())
}

func TestGetSessionHistory(t *testing.T) {
	env := newTestEnv(t)
	seedExchange(t, env, "s1", "financial_advisor", "退休金怎麼準備？", "可以從勞退自提開始。")

	var resp historyResponse
	rec := env.postJSON(t, "/api/history", map[string]string{"sessionId": "s1"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Equal(t, "s1", resp.SessionID)
	require.Equal(t, "financial_advisor", resp.ConsultantID)
	require.Len(t, resp.History, 2)
	require.Equal(t, "user", resp.History[0].Role)
	require.Equal(t, "退休金怎麼準備？", resp.History[0].Content)
	require.Equal(t, "model", resp.History[1].Role)
	require.NotEmpty(t, resp.History[0].Timestamp)
	require.NotEmpty(t, resp.LastUpdated)
}

func TestGetSessionHistoryErrors(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postJSON(t, "/api/history", map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.postJSON(t, "/api/history", map[string]string{"sessionId": "unknown"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAllRecords(t *testing.T) {
	env := newTestEnv(t)
	longPrompt := strings.Repeat("錢", 20)
	seedExchange(t, env, "s1", "financial_advisor", longPrompt, "回答一")
	seedExchange(t, env, "s2", "insurance_advisor", "短問題", "回答二")

	var resp recordListResponse
	rec := env.getJSON(t, "/api/records/all", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, resp.TotalRecords)
	require.Len(t, resp.Records, 2)

	byValue := map[string]recordSummary{}
	for _, record := range resp.Records {
		byValue[record.Value] = record
	}
	// Labels are capped at 15 runes of the first user turn.
	require.Equal(t, strings.Repeat("錢", 15), byValue["s1"].Label)
	require.Equal(t, "短問題", byValue["s2"].Label)
}

func TestListAllRecordsEmpty(t *testing.T) {
	env := newTestEnv(t)
	var resp recordListResponse
	rec := env.getJSON(t, "/api/records/all", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 0, resp.TotalRecords)
	require.Empty(t, resp.Records)
}

func TestListConsultants(t *testing.T) {
	env := newTestEnv(t)
	var resp []consultantResponse
	rec := env.getJSON(t, "/api/config", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp, 3)
	for _, consultant := range resp {
		require.True(t, consultant.IsActive)
		require.NotEmpty(t, consultant.ConsultantID)
		require.NotEmpty(t, consultant.SystemInstruction)
		require.NotEmpty(t, consultant.TopicScope)
	}
}
