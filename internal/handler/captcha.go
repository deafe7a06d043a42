package handlers

import (
	"errors"
	"net/http"

	"github.com/code-100-precent/LingCaptcha/pkg/captcha"
	"github.com/code-100-precent/LingCaptcha/pkg/logger"
	"github.com/code-100-precent/LingCaptcha/pkg/response"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// challengeSession builds the captcha session view over the request's session.
func challengeSession(c *gin.Context) *captcha.ChallengeSession {
	return captcha.NewChallengeSession(captcha.GinSession(sessions.Default(c)), nil)
}

// handleCaptcha serves the challenge for the current session. Without
// parameters it returns the JPEG image, reusing the stored challenge when one
// is active; `regenerate=1` forces a new phrase; `audio=1` returns the spoken
// rendering of the currently active phrase instead.
func (h *Handlers) handleCaptcha(c *gin.Context) {
	if captcha.GlobalCaptchaManager == nil {
		response.Fail(c, "Captcha service not available", nil)
		return
	}

	sess := challengeSession(c)

	if c.Query("audio") == "1" || c.Query("audio") == "true" {
		data, err := captcha.GlobalCaptchaManager.Audio(sess)
		if err != nil {
			if errors.Is(err, captcha.ErrNoActiveChallenge) {
				response.AbortWithStatusJSON(c, http.StatusBadRequest, errors.New("no active captcha"))
				return
			}
			// clip read failures abort the response rather than emit a truncated stream
			logger.Error("captcha audio assembly failed", zap.Error(err))
			response.AbortWithStatus(c, http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, "audio/mpeg", data)
		return
	}

	force := c.Query("regenerate") == "1" || c.Query("regenerate") == "true"
	img, err := captcha.GlobalCaptchaManager.RequestChallenge(sess, force)
	if err != nil {
		logger.Error("captcha render failed", zap.Error(err))
		response.AbortWithStatus(c, http.StatusInternalServerError)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/jpeg", img)
}

// handleCaptchaWidget returns the form widget view model
func (h *Handlers) handleCaptchaWidget(c *gin.Context) {
	if captcha.GlobalCaptchaManager == nil {
		response.Fail(c, "Captcha service not available", nil)
		return
	}

	widget := captcha.NewWidget(c.Query("name"), captcha.GlobalCaptchaManager, challengeSession(c))
	response.Success(c, "Captcha widget", widget.Render("/captcha"))
}

// handleVerifyCaptcha validates a submitted code against the session challenge
func (h *Handlers) handleVerifyCaptcha(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request", nil)
		return
	}

	if captcha.GlobalCaptchaManager == nil {
		response.Fail(c, "Captcha service not available", nil)
		return
	}

	valid := captcha.GlobalCaptchaManager.Verify(challengeSession(c), req.Code)
	if valid {
		response.Success(c, "Captcha verified", gin.H{"valid": true})
	} else {
		response.Fail(c, "invalid captcha code", gin.H{"valid": false})
	}
}

// handleInvalidateCaptcha clears the session challenge; used by form workflows
// that defer consumption until the surrounding action is committed.
func (h *Handlers) handleInvalidateCaptcha(c *gin.Context) {
	if captcha.GlobalCaptchaManager == nil {
		response.Fail(c, "Captcha service not available", nil)
		return
	}

	if err := captcha.GlobalCaptchaManager.Invalidate(challengeSession(c)); err != nil {
		logger.Error("captcha invalidate failed", zap.Error(err))
		response.Fail(c, "Failed to invalidate captcha", nil)
		return
	}
	response.Success(c, "Captcha invalidated", nil)
}
