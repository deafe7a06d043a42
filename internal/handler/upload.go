package handlers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/code-100-precent/LingCaptcha/internal/models"
	"github.com/code-100-precent/LingCaptcha/pkg/captcha"
	"github.com/code-100-precent/LingCaptcha/pkg/captcha/audio"
	"github.com/code-100-precent/LingCaptcha/pkg/config"
	"github.com/code-100-precent/LingCaptcha/pkg/response"
	"github.com/gin-gonic/gin"
)

// handleUploadAudio stores an uploaded mp3 clip into the audio files area.
// The filename must follow the "<locale>_<char>.mp3" or "<char>.mp3"
// convention so it can be keyed into the clip index.
func (h *Handlers) handleUploadAudio(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		response.Fail(c, "Failed to get uploaded file: "+err.Error(), nil)
		return
	}
	defer file.Close()

	name := strings.ToLower(filepath.Base(header.Filename))
	if filepath.Ext(name) != ".mp3" {
		response.Fail(c, "Unsupported file type: only mp3 clips are accepted", nil)
		return
	}
	key, ok := audio.ParseClipName(name)
	if !ok {
		response.Fail(c, `Invalid clip name: expected "lang_char.mp3" or "char.mp3"`, nil)
		return
	}

	uploadDir := config.GlobalConfig.Captcha.AudioUploadDir
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		response.Fail(c, "Failed to prepare upload directory: "+err.Error(), nil)
		return
	}

	dst := filepath.Join(uploadDir, name)
	out, err := os.Create(dst)
	if err != nil {
		response.Fail(c, "Failed to store file: "+err.Error(), nil)
		return
	}
	defer out.Close()

	size, err := io.Copy(out, file)
	if err != nil {
		response.Fail(c, "Failed to store file: "+err.Error(), nil)
		return
	}

	clip := &models.AudioClip{
		FileName: name,
		FilePath: dst,
		Locale:   key.Locale,
		Char:     key.Char,
		Size:     size,
	}
	if err := models.CreateAudioClip(h.db, clip); err != nil {
		response.Fail(c, "Failed to register clip: "+err.Error(), nil)
		return
	}

	// pick up the new clip on the next audio request
	if captcha.GlobalCaptchaManager != nil {
		captcha.GlobalCaptchaManager.RefreshClips()
	}

	response.Success(c, "Audio clip uploaded", gin.H{
		"fileName": clip.FileName,
		"filePath": clip.FilePath,
		"locale":   clip.Locale,
		"char":     clip.Char,
		"fileSize": clip.Size,
	})
}

// handleListAudio lists the registered audio clips
func (h *Handlers) handleListAudio(c *gin.Context) {
	clips, err := models.ListAudioClips(h.db)
	if err != nil {
		response.Fail(c, "Failed to list clips: "+err.Error(), nil)
		return
	}
	response.Success(c, fmt.Sprintf("%d clips", len(clips)), clips)
}
