package audio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArea struct {
	files []AreaFile
	err   error
}

func (a fakeArea) Files() ([]AreaFile, error) { return a.files, a.err }

func TestAreaRepository_ListClips(t *testing.T) {
	repo := NewAreaRepository(fakeArea{files: []AreaFile{
		{Filepath: "/uploads/en_a.mp3", Filename: "en_a.mp3"},
		{Filepath: "/uploads/b.mp3", Filename: "b.mp3"},
		{Filepath: "/uploads/notes.txt", Filename: "notes.txt"},
		{Filepath: "/uploads/badname.mp3", Filename: "badname.mp3"},
	}})

	idx, err := repo.ListClips()
	require.NoError(t, err)

	sources := idx.Resolve("en", "a")
	require.Len(t, sources, 1)
	assert.Equal(t, "/uploads/en_a.mp3", sources[0].Path)
	assert.Len(t, idx.Resolve("", "b"), 1)
	assert.Len(t, idx, 2)
}

func TestAreaRepository_AreaError(t *testing.T) {
	repo := NewAreaRepository(fakeArea{err: errors.New("storage down")})
	_, err := repo.ListClips()
	assert.Error(t, err)
}

func TestAreaRepository_NilArea(t *testing.T) {
	idx, err := NewAreaRepository(nil).ListClips()
	require.NoError(t, err)
	assert.Empty(t, idx)
}
