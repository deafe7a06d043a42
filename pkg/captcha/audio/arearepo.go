package audio

// AreaFile is one entry of a browsable uploaded-files area.
type AreaFile struct {
	Filepath string
	Filename string
}

// FileArea enumerates an uploaded-files storage area.
type FileArea interface {
	Files() ([]AreaFile, error)
}

// AreaRepository adapts an uploaded-files area into a clip repository. The
// flat "<locale>_<char>.mp3" / "<char>.mp3" naming convention applies to the
// uploaded filename; files that do not follow it are skipped.
type AreaRepository struct {
	Area FileArea
}

func NewAreaRepository(area FileArea) *AreaRepository {
	return &AreaRepository{Area: area}
}

func (r *AreaRepository) ListClips() (Index, error) {
	idx := Index{}
	if r.Area == nil {
		return idx, nil
	}
	files, err := r.Area.Files()
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		key, ok := ParseClipName(f.Filename)
		if !ok {
			continue
		}
		idx.Add(key, ClipSource{Name: f.Filename, Path: f.Filepath})
	}
	return idx, nil
}
