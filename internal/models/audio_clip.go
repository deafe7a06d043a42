package models

import (
	"github.com/code-100-precent/LingCaptcha/pkg/captcha/audio"
	"gorm.io/gorm"
)

// AudioClip is one uploaded spoken-character clip in the audio files area.
// Locale and Char are derived from the uploaded filename and kept denormalized
// for listing in the admin UI.
type AudioClip struct {
	BaseModel
	FileName string `json:"fileName" gorm:"size:255;not null"`
	FilePath string `json:"filePath" gorm:"size:1024;not null;uniqueIndex"`
	Locale   string `json:"locale" gorm:"size:16;index"`
	Char     string `json:"char" gorm:"size:8;index"`
	Size     int64  `json:"size"`
}

// CreateAudioClip registers an uploaded clip, replacing an earlier upload of
// the same path.
func CreateAudioClip(db *gorm.DB, clip *AudioClip) error {
	var existing AudioClip
	err := db.Where("file_path = ?", clip.FilePath).First(&existing).Error
	if err == nil {
		clip.ID = existing.ID
		return db.Save(clip).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return db.Create(clip).Error
}

// ListAudioClips returns all registered clips ordered by upload time.
func ListAudioClips(db *gorm.DB) ([]AudioClip, error) {
	var clips []AudioClip
	if err := db.Order("created_at").Find(&clips).Error; err != nil {
		return nil, err
	}
	return clips, nil
}

// DeleteAudioClip removes a clip record by id.
func DeleteAudioClip(db *gorm.DB, id uint) error {
	return db.Delete(&AudioClip{}, id).Error
}

// ClipArea exposes the clip registry as a browsable uploaded-files area for
// the audio assembler.
type ClipArea struct {
	DB *gorm.DB
}

func (a ClipArea) Files() ([]audio.AreaFile, error) {
	clips, err := ListAudioClips(a.DB)
	if err != nil {
		return nil, err
	}
	files := make([]audio.AreaFile, 0, len(clips))
	for _, clip := range clips {
		files = append(files, audio.AreaFile{
			Filepath: clip.FilePath,
			Filename: clip.FileName,
		})
	}
	return files, nil
}
