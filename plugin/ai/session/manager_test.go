package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/useadvisor/advisor/plugin/ai"
)

func newTestManager(t *testing.T) *Manager {
	// Long intervals so the janitor never interferes with the test.
	m := NewManager(time.Hour, time.Hour)
	t.Cleanup(m.Close)
	return m
}

func TestGetOrCreateReusesLiveContext(t *testing.T) {
	m := newTestManager(t)

	h := m.Acquire("s1")
	live, err := h.GetOrCreate("financial_advisor", "instruction", func() ([]ai.Message, error) {
		return nil, nil
	})
	require.NoError(t, err)
	live.AppendExchange("問題", "回答")
	h.Release()

	h = m.Acquire("s1")
	defer h.Release()
	cached, err := h.GetOrCreate("financial_advisor", "instruction", func() ([]ai.Message, error) {
		t.Fatal("prior history should not be reloaded for a cached context")
		return nil, nil
	})
	require.NoError(t, err)
	require.Len(t, cached.History, 2)
	require.Equal(t, "問題", cached.History[0].Content)
	require.Equal(t, "回答", cached.History[1].Content)
}

func TestGetOrCreateRebuildsOnConsultantSwitch(t *testing.T) {
	m := newTestManager(t)

	h := m.Acquire("s1")
	live, err := h.GetOrCreate("financial_advisor", "a", func() ([]ai.Message, error) { return nil, nil })
	require.NoError(t, err)
	live.AppendExchange("舊問題", "舊回答")
	h.Release()

	persisted := []ai.Message{ai.UserMessage("舊問題"), ai.AssistantMessage("舊回答")}
	h = m.Acquire("s1")
	defer h.Release()
	rebuilt, err := h.GetOrCreate("insurance_advisor", "b", func() ([]ai.Message, error) {
		return persisted, nil
	})
	require.NoError(t, err)
	require.Equal(t, "insurance_advisor", rebuilt.ConsultantID)
	require.Equal(t, "b", rebuilt.Instruction)
	require.Equal(t, persisted, rebuilt.History)
}

func TestGetOrCreatePriorFailure(t *testing.T) {
	m := newTestManager(t)

	h := m.Acquire("s1")
	defer h.Release()
	_, err := h.GetOrCreate("financial_advisor", "a", func() ([]ai.Message, error) {
		return nil, errors.New("db gone")
	})
	require.Error(t, err)
}

func TestInvalidateDropsContext(t *testing.T) {
	m := newTestManager(t)

	h := m.Acquire("s1")
	_, err := h.GetOrCreate("financial_advisor", "a", func() ([]ai.Message, error) { return nil, nil })
	require.NoError(t, err)
	h.Invalidate()
	h.Release()

	h = m.Acquire("s1")
	defer h.Release()
	rebuilt := false
	_, err = h.GetOrCreate("financial_advisor", "a", func() ([]ai.Message, error) {
		rebuilt = true
		return nil, nil
	})
	require.NoError(t, err)
	require.True(t, rebuilt)
}

func TestAcquireSerializesSameSession(t *testing.T) {
	m := newTestManager(t)

	h := m.Acquire("s1")
	acquired := make(chan struct{})
	go func() {
		h2 := m.Acquire("s1")
		close(acquired)
		h2.Release()
	}()

	select {
	case <-acquired:
		t.Fatal("second Acquire should block while the session is held")
	case <-time.After(50 * time.Millisecond):
	}

	h.Release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second Acquire never proceeded after Release")
	}
}

func TestAcquireDoesNotBlockAcrossSessions(t *testing.T) {
	m := newTestManager(t)

	h := m.Acquire("s1")
	defer h.Release()

	done := make(chan struct{})
	go func() {
		other := m.Acquire("s2")
		other.Release()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Acquire for a different session blocked")
	}
}

func TestEvictIdle(t *testing.T) {
	m := newTestManager(t)
	m.maxIdle = 10 * time.Millisecond

	h := m.Acquire("stale")
	h.Release()
	held := m.Acquire("held")
	require.Equal(t, 2, m.Len())

	m.evictIdle(time.Now().Add(time.Minute))

	// Held sessions survive the sweep, idle ones are dropped.
	require.Equal(t, 1, m.Len())
	held.Release()

	m.evictIdle(time.Now().Add(time.Minute))
	require.Equal(t, 0, m.Len())

	// An evicted session id is still usable afterwards.
	h = m.Acquire("stale")
	h.Release()
	require.Equal(t, 1, m.Len())
}
