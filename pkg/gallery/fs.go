package gallery

import (
	"fmt"

	"github.com/spf13/afero"
)

func newFs(path string) (afero.Fs, error) {
	fs := afero.NewOsFs()
	if exists, err := afero.DirExists(fs, path); err != nil {
		return nil, err
	} else if !exists {
		return nil, fmt.Errorf("dir %s not exists", path)
	}
	return afero.NewBasePathFs(fs, path), nil
}
