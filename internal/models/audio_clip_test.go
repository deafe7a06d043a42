package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAudioClipTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	return db
}

func TestAudioClip_CreateAndList(t *testing.T) {
	db := setupAudioClipTestDB(t)

	clip := &AudioClip{
		FileName: "en_a.mp3",
		FilePath: "/uploads/en_a.mp3",
		Locale:   "en",
		Char:     "a",
		Size:     1234,
	}
	require.NoError(t, CreateAudioClip(db, clip))
	assert.NotZero(t, clip.ID)
	assert.NotZero(t, clip.CreatedAt)

	clips, err := ListAudioClips(db)
	require.NoError(t, err)
	require.Len(t, clips, 1)
	assert.Equal(t, "en_a.mp3", clips[0].FileName)
	assert.Equal(t, "en", clips[0].Locale)
	assert.Equal(t, "a", clips[0].Char)
}

func TestAudioClip_CreateReplacesSamePath(t *testing.T) {
	db := setupAudioClipTestDB(t)

	first := &AudioClip{FileName: "en_a.mp3", FilePath: "/uploads/en_a.mp3", Locale: "en", Char: "a", Size: 100}
	require.NoError(t, CreateAudioClip(db, first))

	// re-upload of the same path updates in place
	second := &AudioClip{FileName: "en_a.mp3", FilePath: "/uploads/en_a.mp3", Locale: "en", Char: "a", Size: 200}
	require.NoError(t, CreateAudioClip(db, second))
	assert.Equal(t, first.ID, second.ID)

	clips, err := ListAudioClips(db)
	require.NoError(t, err)
	require.Len(t, clips, 1)
	assert.Equal(t, int64(200), clips[0].Size)
}

func TestAudioClip_Delete(t *testing.T) {
	db := setupAudioClipTestDB(t)

	clip := &AudioClip{FileName: "b.mp3", FilePath: "/uploads/b.mp3", Char: "b"}
	require.NoError(t, CreateAudioClip(db, clip))

	require.NoError(t, DeleteAudioClip(db, clip.ID))

	clips, err := ListAudioClips(db)
	require.NoError(t, err)
	assert.Empty(t, clips)
}

func TestClipArea_Files(t *testing.T) {
	db := setupAudioClipTestDB(t)

	require.NoError(t, CreateAudioClip(db, &AudioClip{FileName: "en_a.mp3", FilePath: "/uploads/en_a.mp3", Locale: "en", Char: "a"}))
	require.NoError(t, CreateAudioClip(db, &AudioClip{FileName: "b.mp3", FilePath: "/uploads/b.mp3", Char: "b"}))

	files, err := ClipArea{DB: db}.Files()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "/uploads/en_a.mp3", files[0].Filepath)
	assert.Equal(t, "en_a.mp3", files[0].Filename)
}
