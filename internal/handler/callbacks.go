package handler

import (
	"errors"
	"strings"
	"unicode"

	"wordbook/internal/domain"
	"wordbook/internal/render"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Per-word button actions, encoded as "<action>_<id>"
const (
	actionMemorize   = "mem"
	actionUnmemorize = "unmem"
	actionDelete     = "del"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// wordActionData encodes a per-word button payload
func wordActionData(action, id string) string {
	return action + "_" + id
}

// parseWordAction splits a per-word button payload into action and word id
func parseWordAction(data string) (action, id string, ok bool) {
	action, id, found := strings.Cut(data, "_")
	if !found || id == "" {
		return "", "", false
	}
	switch action {
	case actionMemorize, actionUnmemorize, actionDelete:
		return action, id, true
	}
	return "", "", false
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already up to date, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		if ackErr := c.Respond(); ackErr != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
		}
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles callbacks not bound to a static button
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Buttons without a registered handler arrive as "\f<unique>"
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.Int64("user_id", c.Sender().ID),
	)

	action, id, ok := parseWordAction(data)
	if !ok {
		h.logger.Warn("Unhandled callback", zap.String("data", data))
		return c.Respond()
	}

	return h.handleWordAction(c, action, id)
}

// handleWordAction toggles or removes a word, then redraws the list it was shown in
func (h *Handler) handleWordAction(c tele.Context, action, id string) error {
	record, found := h.store.FindByID(id)

	var err error
	switch action {
	case actionMemorize:
		err = h.store.MarkAsMemorized(id)
	case actionUnmemorize:
		err = h.store.UnmarkAsMemorized(id)
	case actionDelete:
		err = h.store.Unregister(id)
	}

	if errors.Is(err, domain.ErrWordNotFound) || (err == nil && !found) {
		return c.Respond(&tele.CallbackResponse{Text: "Word not found", ShowAlert: true})
	}
	if err != nil {
		h.logger.Error("Failed to apply word action",
			zap.Error(err),
			zap.String("action", action),
			zap.String("id", id),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Something went wrong"})
	}

	// Redraw the list the button belonged to
	completed := record.IsMarkedAsMemorized
	switch action {
	case actionMemorize:
		completed = false
	case actionUnmemorize:
		completed = true
	}
	return h.showList(c, completed)
}

// handleActiveList shows words not yet memorized
func (h *Handler) handleActiveList(c tele.Context) error {
	return h.showList(c, false)
}

// handleCompletedList shows memorized words
func (h *Handler) handleCompletedList(c tele.Context) error {
	return h.showList(c, true)
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	h.ResetState(c.Sender().ID)
	return h.handleStart(c)
}

// showList renders one grouping, newest first, with per-word buttons
func (h *Handler) showList(c tele.Context, completed bool) error {
	userID := c.Sender().ID
	text, markup := listMessage(render.Partition(h.store.All()), completed)

	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}

// listMessage builds the text and keyboard for one grouping
func listMessage(view domain.ListView, completed bool) (string, *tele.ReplyMarkup) {
	title, words, toggle, toggleIcon := "📖 Active words", view.Active, actionMemorize, "✅"
	if completed {
		title, words, toggle, toggleIcon = "🏁 Completed words", view.Completed, actionUnmemorize, "↩️"
	}

	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(words)+1)
	for _, w := range words {
		rows = append(rows, markup.Row(
			markup.Data(toggleIcon+" "+w.Word, wordActionData(toggle, w.ID)),
			markup.Data("🗑", wordActionData(actionDelete, w.ID)),
		))
	}
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)

	return render.FormatList(title, words), markup
}
