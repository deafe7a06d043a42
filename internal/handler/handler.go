package handlers

import (
	"github.com/code-100-precent/LingCaptcha/pkg/config"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handlers bundles the HTTP handlers and their shared dependencies.
type Handlers struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Handlers {
	return &Handlers{db: db}
}

// Register registers all routes
func (h *Handlers) Register(r *gin.Engine) {
	// challenge endpoints
	r.GET("/captcha", h.handleCaptcha)
	r.GET("/captcha/widget", h.handleCaptchaWidget)
	r.POST("/captcha/verify", h.handleVerifyCaptcha)
	r.POST("/captcha/invalidate", h.handleInvalidateCaptcha)

	// admin audio asset management
	admin := r.Group(config.GlobalConfig.Server.AdminPrefix)
	{
		admin.POST("/captcha/audio", h.handleUploadAudio)
		admin.GET("/captcha/audio", h.handleListAudio)
	}
}
