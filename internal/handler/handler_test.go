package handler

import (
	"errors"
	"testing"

	"wordbook/internal/domain"
	"wordbook/internal/service"
	"wordbook/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = int64(42)

func newTestHandler(t *testing.T) (*Handler, *service.WordStore) {
	t.Helper()
	logger := testutil.NewTestLogger()
	slots := testutil.NewMemorySlots()

	store := service.NewWordStore(slots, logger)
	require.NoError(t, store.Load())

	auth := service.NewAuthService(slots, "secret")
	require.NoError(t, auth.AuthorizeUser(testUserID))

	h := NewHandler(nil, auth, store, service.NewStatsService(store, logger), logger)
	return h, store
}

func sendText(t *testing.T, h *Handler, text string) *testutil.FakeContext {
	t.Helper()
	c := testutil.NewFakeMessage(testUserID, text)
	require.NoError(t, h.handleText(c))
	return c
}

func TestHandleText_AddWordWithUsage(t *testing.T) {
	h, store := newTestHandler(t)

	c := sendText(t, h, "run")
	assert.Contains(t, c.LastSent(), "meaning of «run»")
	assert.Equal(t, domain.StateWaitingMeaning, h.GetState(testUserID).State)

	c = sendText(t, h, "to move fast")
	assert.Contains(t, c.LastSent(), "usage example")
	assert.Equal(t, domain.StateWaitingUsage, h.GetState(testUserID).State)

	sendText(t, h, "run away")
	assert.Equal(t, domain.StateWaitingUsageMeaning, h.GetState(testUserID).State)
	assert.Empty(t, store.All())

	c = sendText(t, h, "escape")
	assert.Contains(t, c.LastSent(), "Saved")
	assert.Equal(t, domain.StateWaitingWord, h.GetState(testUserID).State)

	all := store.All()
	require.Len(t, all, 1)
	assert.Equal(t, "run", all[0].Word)
	assert.Equal(t, "to move fast", all[0].Meaning)
	assert.Equal(t, []domain.Usage{{Expression: "run away", Meaning: "escape"}}, all[0].Usages)
	assert.False(t, all[0].IsMarkedAsMemorized)
}

func TestHandleText_AddWordSkippingUsage(t *testing.T) {
	h, store := newTestHandler(t)

	sendText(t, h, "jog")
	sendText(t, h, "to run slowly")

	c := testutil.NewFakeCallback(testUserID, "\fskip_usage")
	require.NoError(t, h.handleSkipUsage(c))
	assert.Contains(t, c.LastSent(), "Saved")

	all := store.All()
	require.Len(t, all, 1)
	assert.Equal(t, "jog", all[0].Word)
	assert.Equal(t, "to run slowly", all[0].Meaning)
	assert.Nil(t, all[0].Usages)

	// The next message starts a new word
	sendText(t, h, "walk")
	assert.Equal(t, domain.StateWaitingMeaning, h.GetState(testUserID).State)
	assert.Equal(t, "walk", h.GetState(testUserID).Word)
}

func TestHandleSkipUsage_NothingPending(t *testing.T) {
	h, store := newTestHandler(t)

	c := testutil.NewFakeCallback(testUserID, "\fskip_usage")
	require.NoError(t, h.handleSkipUsage(c))

	require.NotNil(t, c.LastResponse())
	assert.Equal(t, "Nothing to skip", c.LastResponse().Text)
	assert.Empty(t, store.All())
}

func TestHandleText_IgnoresCommands(t *testing.T) {
	h, _ := newTestHandler(t)

	c := sendText(t, h, "/help")

	assert.Empty(t, c.Sent)
	assert.Equal(t, domain.StateIdle, h.GetState(testUserID).State)
}

func TestHandleText_Password(t *testing.T) {
	h, store := newTestHandler(t)
	const stranger = int64(7)

	c := testutil.NewFakeMessage(stranger, "guess")
	require.NoError(t, h.handleText(c))
	assert.Equal(t, "Wrong password.", c.LastSent())

	c = testutil.NewFakeMessage(stranger, "secret")
	require.NoError(t, h.handleText(c))
	assert.Contains(t, c.LastSent(), "Access granted")

	authorized, err := h.authService.IsAuthorized(stranger)
	require.NoError(t, err)
	assert.True(t, authorized)
	assert.Empty(t, store.All())
}

func TestHandleWordAction_UnknownID(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, action := range []string{actionMemorize, actionUnmemorize, actionDelete} {
		t.Run(action, func(t *testing.T) {
			c := testutil.NewFakeCallback(testUserID, "\f"+wordActionData(action, "missing"))

			require.NoError(t, h.handleCallback(c))

			resp := c.LastResponse()
			require.NotNil(t, resp)
			assert.Equal(t, "Word not found", resp.Text)
			assert.True(t, resp.ShowAlert)
			assert.Empty(t, c.Edited)
		})
	}
}

func TestHandleWordAction_MemorizeAndRemove(t *testing.T) {
	h, store := newTestHandler(t)
	id, err := store.Register("run", "to move fast", nil)
	require.NoError(t, err)

	c := testutil.NewFakeCallback(testUserID, "\f"+wordActionData(actionMemorize, id))
	require.NoError(t, h.handleCallback(c))

	record, ok := store.FindByID(id)
	require.True(t, ok)
	assert.True(t, record.IsMarkedAsMemorized)
	require.Len(t, c.Edited, 1)
	assert.Contains(t, c.Edited[0], "Active words")
	assert.NotContains(t, c.Edited[0], "run — to move fast")

	c = testutil.NewFakeCallback(testUserID, "\f"+wordActionData(actionUnmemorize, id))
	require.NoError(t, h.handleCallback(c))
	record, _ = store.FindByID(id)
	assert.False(t, record.IsMarkedAsMemorized)
	require.Len(t, c.Edited, 1)
	assert.Contains(t, c.Edited[0], "Completed words")

	c = testutil.NewFakeCallback(testUserID, "\f"+wordActionData(actionDelete, id))
	require.NoError(t, h.handleCallback(c))
	_, ok = store.FindByID(id)
	assert.False(t, ok)
	require.Len(t, c.Edited, 1)
	assert.Contains(t, c.Edited[0], "Active words")
}

func TestHandleCallback_Unhandled(t *testing.T) {
	h, store := newTestHandler(t)

	c := testutil.NewFakeCallback(testUserID, "\fday_20240101")
	require.NoError(t, h.handleCallback(c))

	require.Len(t, c.Responses, 1)
	assert.Empty(t, c.Responses[0].Text)
	assert.Empty(t, store.All())
}

func TestShowList_EditFailures(t *testing.T) {
	h, store := newTestHandler(t)
	_, err := store.Register("run", "to move fast", nil)
	require.NoError(t, err)

	t.Run("not modified only acknowledges", func(t *testing.T) {
		c := testutil.NewFakeCallback(testUserID, "\factive_list")
		c.EditErr = errors.New("telegram: message is not modified (400)")

		require.NoError(t, h.handleActiveList(c))

		assert.Empty(t, c.Sent)
		assert.Len(t, c.Responses, 1)
	})

	t.Run("other errors fall back to a new message", func(t *testing.T) {
		c := testutil.NewFakeCallback(testUserID, "\factive_list")
		c.EditErr = errors.New("telegram: message to edit not found (400)")

		require.NoError(t, h.handleActiveList(c))

		require.Len(t, c.Sent, 1)
		assert.Contains(t, c.Sent[0], "run — to move fast")
		assert.Len(t, c.Responses, 1)
	})
}
