package middleware

import (
	"wordbook/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// AuthMiddleware rejects button presses from users who have not entered the password.
// Messages pass through so that /start and the password itself can be handled.
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Callback() == nil || c.Sender() == nil {
				return next(c)
			}

			authorized, err := authService.IsAuthorized(c.Sender().ID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return c.Respond(&tele.CallbackResponse{Text: "Something went wrong"})
			}

			if !authorized {
				return c.Respond(&tele.CallbackResponse{
					Text:      "Send /start and the password first",
					ShowAlert: true,
				})
			}

			return next(c)
		}
	}
}
