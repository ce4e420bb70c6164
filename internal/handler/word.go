package handler

import (
	"strings"

	"wordbook/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	// Check authorization first
	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send("Something went wrong. Please try again later.")
	}

	// If not authorized, check password
	if !authorized {
		if !h.authService.CheckPassword(text) {
			return c.Send("Wrong password.")
		}

		if err := h.authService.AuthorizeUser(userID); err != nil {
			h.logger.Error("Failed to authorize user", zap.Error(err))
			return c.Send("Something went wrong. Please try again later.")
		}

		h.logger.Info("User authorized", zap.Int64("user_id", userID))
		h.ResetState(userID)
		return c.Send("✅ Access granted!\n\n"+mainMenuText(h.stats.Summary()), mainMenuMarkup())
	}

	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingMeaning:
		h.SetState(userID, &domain.StateData{
			State:   domain.StateWaitingUsage,
			Word:    state.Word,
			Meaning: text,
		})

		markup := &tele.ReplyMarkup{}
		markup.Inline(markup.Row(btnSkipUsage, btnCancel))
		return c.Send("Send a usage example, or skip:", markup)

	case domain.StateWaitingUsage:
		h.SetState(userID, &domain.StateData{
			State:           domain.StateWaitingUsageMeaning,
			Word:            state.Word,
			Meaning:         state.Meaning,
			UsageExpression: text,
		})
		return c.Send("What does this usage mean?", cancelMarkup())

	case domain.StateWaitingUsageMeaning:
		usages := []domain.Usage{{Expression: state.UsageExpression, Meaning: text}}
		return h.saveWord(c, state.Word, state.Meaning, usages)

	default:
		// Idle or waiting for a word: the text is the new word
		h.SetState(userID, &domain.StateData{
			State: domain.StateWaitingMeaning,
			Word:  text,
		})
		return c.Send("Now send the meaning of «"+text+"»:", cancelMarkup())
	}
}

// handleAddWord starts the add-word flow
func (h *Handler) handleAddWord(c tele.Context) error {
	userID := c.Sender().ID
	h.SetState(userID, &domain.StateData{State: domain.StateWaitingWord})

	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return c.Send("Send the word you want to learn:", cancelMarkup())
}

// handleSkipUsage saves the pending word without a usage example
func (h *Handler) handleSkipUsage(c tele.Context) error {
	state := h.GetState(c.Sender().ID)
	if state.State != domain.StateWaitingUsage {
		return c.Respond(&tele.CallbackResponse{Text: "Nothing to skip"})
	}

	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return h.saveWord(c, state.Word, state.Meaning, nil)
}

// saveWord registers the word and waits for the next one
func (h *Handler) saveWord(c tele.Context, word, meaning string, usages []domain.Usage) error {
	userID := c.Sender().ID

	id, err := h.store.Register(word, meaning, usages)
	if err != nil {
		h.logger.Error("Failed to save word",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return c.Send("Could not save the word. Please try again.")
	}

	h.logger.Info("Word saved",
		zap.Int64("user_id", userID),
		zap.String("id", id),
		zap.String("word", word),
	)

	h.SetState(userID, &domain.StateData{State: domain.StateWaitingWord})

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnMainMenu))
	return c.Send("✅ Saved!\n\nSend the next word or go back to the menu.", markup)
}
