package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianlabs/converse/internal/adapter/llm"
	"github.com/meridianlabs/converse/internal/domain"
	"github.com/meridianlabs/converse/internal/store"
)

func TestChatHappyPath(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	model := &scriptedModel{}
	svc := newTestService(t, st, model)

	session, err := svc.CreateSession(ctx, "alice", "", "")
	require.NoError(t, err)
	created := session.UpdatedAt

	reply, sessionID, err := svc.Chat(ctx, "alice", session.SessionID, "hello there")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, session.SessionID, sessionID)

	messages, err := st.GetMessages(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, domain.RoleUser, messages[0].Role)
	assert.Equal(t, "hello there", messages[0].Content)
	assert.Equal(t, domain.RoleAssistant, messages[1].Role)
	assert.Equal(t, "ok", messages[1].Content)

	got, err := st.GetSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.MessageCount)
	assert.False(t, got.UpdatedAt.Before(created))
}

func TestChatCreatesSessionWhenIDEmpty(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := newTestService(t, st, &scriptedModel{})

	reply, sessionID, err := svc.Chat(ctx, "alice", "", "hello")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.True(t, strings.HasPrefix(sessionID, "alice_"))

	session, err := st.GetSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "alice", session.Owner)
	assert.Equal(t, "Chat Session", session.Name)
	assert.Equal(t, 2, session.MessageCount)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := newTestService(t, st, &scriptedModel{})

	session, err := svc.CreateSession(ctx, "alice", "", "")
	require.NoError(t, err)

	for _, message := range []string{"", "   ", "\n\t"} {
		_, _, err := svc.Chat(ctx, "alice", session.SessionID, message)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	// No side effects from rejected turns.
	messages, err := st.GetMessages(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Empty(t, messages)
	got, err := st.GetSession(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.MessageCount)
}

func TestChatRejectsMissingOwner(t *testing.T) {
	svc := newTestService(t, nil, &scriptedModel{})
	_, _, err := svc.Chat(context.Background(), "", "alice_x1", "hello")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChatRejectsUnknownSessionInOwnNamespace(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	model := &scriptedModel{}
	svc := newTestService(t, st, model)

	// The id sits in alice's namespace, so policy allows it, but no such
	// session was ever created. That is a not-found, never a silent turn
	// and never a retried store failure.
	_, _, err := svc.Chat(ctx, "alice", "alice_ghost", "hello")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, model.recorded())

	messages, err := st.GetMessages(ctx, "alice_ghost")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestChatRejectsForeignSession(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	model := &scriptedModel{}
	svc := newTestService(t, st, model)

	session, err := svc.CreateSession(ctx, "alice", "", "")
	require.NoError(t, err)

	_, _, err = svc.Chat(ctx, "bob", session.SessionID, "hello")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, model.recorded())
}

func TestChatModelFailureLeavesUserMessage(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	model := &scriptedModel{
		complete: func(req *llm.ChatCompletionRequest) (string, error) {
			return "", fmt.Errorf("%w: upstream 502", domain.ErrModelError)
		},
	}
	svc := newTestService(t, st, model)

	session, err := svc.CreateSession(ctx, "alice", "", "")
	require.NoError(t, err)

	_, _, err = svc.Chat(ctx, "alice", session.SessionID, "hello")
	assert.ErrorIs(t, err, domain.ErrModelError)

	// The user message survives the failed turn; no assistant reply, no
	// metadata bump.
	messages, err := st.GetMessages(ctx, session.SessionID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, domain.RoleUser, messages[0].Role)

	got, err := st.GetSession(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.MessageCount)
}

func TestChatModelTimeout(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	model := &scriptedModel{
		complete: func(req *llm.ChatCompletionRequest) (string, error) {
			return "", context.DeadlineExceeded
		},
	}
	svc := newTestService(t, st, model)

	session, err := svc.CreateSession(ctx, "alice", "", "")
	require.NoError(t, err)

	_, _, err = svc.Chat(ctx, "alice", session.SessionID, "hello")
	assert.ErrorIs(t, err, domain.ErrModelTimeout)
}

// bumpFailStore fails BumpSession only.
type bumpFailStore struct {
	store.Store
}

func (b *bumpFailStore) BumpSession(ctx context.Context, sessionID string, delta int, updatedAt time.Time) error {
	return errors.New("metadata write rejected")
}

func TestChatSucceedsWhenBumpFails(t *testing.T) {
	ctx := context.Background()
	inner := store.NewMemoryStore()
	svc := newTestService(t, &bumpFailStore{Store: inner}, &scriptedModel{})

	session, err := svc.CreateSession(ctx, "alice", "", "")
	require.NoError(t, err)

	reply, _, err := svc.Chat(ctx, "alice", session.SessionID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)

	// Messages landed even though the counter did not.
	messages, err := inner.GetMessages(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
	got, err := inner.GetSession(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.MessageCount)
}

func TestChatHistoryReachesModel(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := newTestService(t, st, llm.NewMockClient())

	_, sessionID, err := svc.Chat(ctx, "alice", "", "Hi, my name is Alex")
	require.NoError(t, err)

	reply, _, err := svc.Chat(ctx, "alice", sessionID, "What's my name?")
	require.NoError(t, err)
	assert.Contains(t, reply, "Alex")
}

func TestChatSessionsDoNotShareHistory(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := newTestService(t, st, llm.NewMockClient())

	_, _, err := svc.Chat(ctx, "alice", "", "Hi, my name is Alex")
	require.NoError(t, err)

	reply, _, err := svc.Chat(ctx, "alice", "", "What's my name?")
	require.NoError(t, err)
	assert.NotContains(t, reply, "Alex")
}

func TestChatSerializesTurnsPerSession(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	firstStarted := make(chan struct{})
	release := make(chan struct{})
	model := &scriptedModel{}
	model.complete = func(req *llm.ChatCompletionRequest) (string, error) {
		if len(model.recorded()) == 1 {
			close(firstStarted)
			<-release
			return "first reply", nil
		}
		return "second reply", nil
	}
	svc := newTestService(t, st, model)

	session, err := svc.CreateSession(ctx, "alice", "", "")
	require.NoError(t, err)

	firstDone := make(chan error, 1)
	go func() {
		_, _, err := svc.Chat(ctx, "alice", session.SessionID, "first message")
		firstDone <- err
	}()

	<-firstStarted

	secondDone := make(chan error, 1)
	go func() {
		_, _, err := svc.Chat(ctx, "alice", session.SessionID, "second message")
		secondDone <- err
	}()

	// The second turn must queue behind the first, which is still holding
	// the session while blocked in the model.
	select {
	case err := <-secondDone:
		t.Fatalf("second turn finished while first held the session: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-firstDone)
	require.NoError(t, <-secondDone)

	// The queued turn saw the completed first turn in its prompt.
	requests := model.recorded()
	require.Len(t, requests, 2)
	second := requests[1]
	require.Len(t, second.Messages, 3)
	assert.Equal(t, "first message", second.Messages[0].Content)
	assert.Equal(t, "first reply", second.Messages[1].Content)
	assert.Equal(t, "second message", second.Messages[2].Content)

	messages, err := st.GetMessages(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Len(t, messages, 4)
}

func TestChatDifferentSessionsRunConcurrently(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	// Both turns must be in flight at once for either to finish.
	barrier := make(chan struct{}, 2)
	model := &scriptedModel{
		complete: func(req *llm.ChatCompletionRequest) (string, error) {
			barrier <- struct{}{}
			deadline := time.Now().Add(2 * time.Second)
			for len(barrier) < 2 {
				if time.Now().After(deadline) {
					return "", errors.New("peer turn never arrived")
				}
				time.Sleep(time.Millisecond)
			}
			return "ok", nil
		},
	}
	svc := newTestService(t, st, model)

	a, err := svc.CreateSession(ctx, "alice", "", "")
	require.NoError(t, err)
	b, err := svc.CreateSession(ctx, "alice", "", "")
	require.NoError(t, err)

	done := make(chan error, 2)
	go func() {
		_, _, err := svc.Chat(ctx, "alice", a.SessionID, "hello a")
		done <- err
	}()
	go func() {
		_, _, err := svc.Chat(ctx, "alice", b.SessionID, "hello b")
		done <- err
	}()

	for i := 0; i < 2; i++ {
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(3 * time.Second):
			t.Fatal("turns on independent sessions blocked each other")
		}
	}
}
