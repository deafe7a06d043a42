package listeners

import (
	"github.com/code-100-precent/LingCaptcha/pkg/events"
	"github.com/code-100-precent/LingCaptcha/pkg/logger"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// InitCaptchaListeners wires the audit log onto the captcha event bus.
func InitCaptchaListeners() {
	logger.Info("Initializing captcha listeners...")

	bus := events.GetEventBus()

	bus.Subscribe(events.TypeChallengeIssued, func(event events.Event) error {
		logger.Info("Captcha challenge issued",
			zap.String("source", event.Source),
			zap.Bool("forced", cast.ToBool(event.Data["forced"])))
		return nil
	})

	bus.Subscribe(events.TypeChallengeVerified, func(event events.Event) error {
		logger.Info("Captcha challenge verified", zap.String("source", event.Source))
		return nil
	})

	bus.Subscribe(events.TypeChallengeFailed, func(event events.Event) error {
		logger.Warn("Captcha verification failed", zap.String("source", event.Source))
		return nil
	})
}
