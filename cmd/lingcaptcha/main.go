package main

import (
	"github.com/code-100-precent/LingCaptcha/internal/handler"
	"github.com/code-100-precent/LingCaptcha/internal/listeners"
	"github.com/code-100-precent/LingCaptcha/internal/models"
	"github.com/code-100-precent/LingCaptcha/pkg/cache"
	"github.com/code-100-precent/LingCaptcha/pkg/captcha"
	"github.com/code-100-precent/LingCaptcha/pkg/captcha/audio"
	"github.com/code-100-precent/LingCaptcha/pkg/config"
	"github.com/code-100-precent/LingCaptcha/pkg/logger"
	"github.com/code-100-precent/LingCaptcha/pkg/middleware"
	"github.com/code-100-precent/LingCaptcha/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := config.Load(); err != nil {
		panic("failed to load config: " + err.Error())
	}
	cfg := config.GlobalConfig
	if err := cfg.Validate(); err != nil {
		panic("invalid config: " + err.Error())
	}

	if err := logger.Init(&cfg.Log, cfg.Server.Mode); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	db, err := utils.InitDatabase(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	if err := models.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	byteCache, err := cache.NewCache(cfg.Cache)
	if err != nil {
		logger.Fatal("Failed to init cache", zap.Error(err))
	}
	defer byteCache.Close()

	captcha.GlobalCaptchaManager = captcha.NewManager(captcha.Options{
		Width:               cfg.Captcha.Width,
		Height:              cfg.Captcha.Height,
		PhraseLength:        cfg.Captcha.PhraseLength,
		Alphabet:            cfg.Captcha.Alphabet,
		TTL:                 cfg.Captcha.TTL,
		JPEGQuality:         cfg.Captcha.JPEGQuality,
		DefaultLocale:       cfg.Captcha.DefaultLocale,
		KeepPhraseOnSuccess: !cfg.Captcha.ConsumeOnSuccess,
	}, byteCache,
		audio.NewDirRepository(cfg.Captcha.AudioFilesDir),
		audio.NewAreaRepository(models.ClipArea{DB: db}),
	)

	listeners.InitCaptchaListeners()

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CorsMiddleware())
	r.Use(middleware.WithCookieSession(cfg.Auth.SessionSecret, cfg.Auth.SessionMaxAge))

	handlers.New(db).Register(r)

	logger.Info("LingCaptcha server starting", zap.String("addr", cfg.Server.Addr))
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.Fatal("Server exited", zap.Error(err))
	}
}
