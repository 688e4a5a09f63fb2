package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/useadvisor/advisor/internal/profile"
	"github.com/useadvisor/advisor/store"
	"github.com/useadvisor/advisor/store/db/mysql"
)

func TestMySQLDriver(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mysql container test in short mode")
	}

	ctx := context.Background()
	p := &profile.Profile{Mode: "dev", Driver: "mysql", DSN: GetMySQLDSN(t)}

	driver, err := mysql.NewDB(p)
	require.NoError(t, err)
	st := store.New(driver, p)
	t.Cleanup(func() {
		_ = st.Close()
	})
	require.NoError(t, st.Migrate(ctx))

	consultants, err := st.ListConsultants(ctx, &store.FindConsultant{})
	require.NoError(t, err)
	require.Len(t, consultants, 3)

	record, err := st.CreateChatRecord(ctx, &store.ChatRecord{SessionID: "my-s1", ConsultantID: "financial_advisor"})
	require.NoError(t, err)

	turn, err := st.CreateChatTurn(ctx, &store.CreateChatTurn{RecordID: record.ID, Role: store.RoleUser, Text: "單獨的問題"})
	require.NoError(t, err)
	require.NotZero(t, turn.CreatedTs)

	next := "insurance_advisor"
	require.NoError(t, st.CreateChatExchange(ctx, &store.CreateChatExchange{
		RecordID:     record.ID,
		SessionID:    "my-s1",
		ConsultantID: &next,
		UserText:     "問題",
		ModelText:    "回答",
	}))

	turns, err := st.ListChatTurns(ctx, &store.FindChatTurn{RecordID: record.ID})
	require.NoError(t, err)
	require.Len(t, turns, 3)
	require.Equal(t, store.RoleUser, turns[1].Role)
	require.Equal(t, store.RoleModel, turns[2].Role)

	updated, err := st.GetChatRecord(ctx, &store.FindChatRecord{SessionID: &record.SessionID})
	require.NoError(t, err)
	require.Equal(t, next, updated.ConsultantID)
}
