package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/useadvisor/advisor/internal/profile"
	"github.com/useadvisor/advisor/store"
	"github.com/useadvisor/advisor/store/db/postgres"
)

func TestPostgresDriver(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()
	p := &profile.Profile{Mode: "dev", Driver: "postgres", DSN: GetPostgresDSN(t)}

	driver, err := postgres.NewDB(p)
	require.NoError(t, err)
	st := store.New(driver, p)
	t.Cleanup(func() {
		_ = st.Close()
	})
	require.NoError(t, st.Migrate(ctx))

	consultants, err := st.ListConsultants(ctx, &store.FindConsultant{})
	require.NoError(t, err)
	require.Len(t, consultants, 3)

	record, err := st.CreateChatRecord(ctx, &store.ChatRecord{SessionID: "pg-s1", ConsultantID: "financial_advisor"})
	require.NoError(t, err)

	_, err = st.CreateChatTurn(ctx, &store.CreateChatTurn{RecordID: record.ID, Role: store.RoleUser, Text: "問題"})
	require.NoError(t, err)
	_, err = st.CreateChatTurn(ctx, &store.CreateChatTurn{RecordID: record.ID, Role: store.RoleModel, Text: "回答"})
	require.NoError(t, err)

	turns, err := st.ListChatTurns(ctx, &store.FindChatTurn{RecordID: record.ID})
	require.NoError(t, err)
	require.Len(t, turns, 2)
	require.Equal(t, store.RoleUser, turns[0].Role)
	require.Equal(t, store.RoleModel, turns[1].Role)

	next := "insurance_advisor"
	updated, err := st.UpdateChatRecord(ctx, &store.UpdateChatRecord{SessionID: "pg-s1", ConsultantID: &next})
	require.NoError(t, err)
	require.Equal(t, next, updated.ConsultantID)
}
