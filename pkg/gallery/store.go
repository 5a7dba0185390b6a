package gallery

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path"
	"strings"

	"github.com/inhies/go-bytesize"
	"github.com/rs/xid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const ext = ".png"

func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	fs, err := newFs(dir)
	if err != nil {
		return nil, fmt.Errorf("create store failed: %w", err)
	}

	return &Store{fs: fs, log: logger}, nil
}

// Store writes composited images under a fixed gallery root. Names missing
// the image extension get it appended; an empty name gets a generated one.
type Store struct {
	fs  afero.Fs
	log *zap.Logger
}

func Filename(name string) string {
	if name == "" {
		name = xid.New().String()
	}
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	return name
}

func (s *Store) Save(name string, img image.Image) (string, error) {
	file := Filename(name)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("png encode failed: %w", err)
	}

	if dir := path.Dir(file); dir != "." {
		if exists, err := afero.DirExists(s.fs, dir); err != nil {
			return "", err
		} else if !exists {
			if err2 := s.fs.MkdirAll(dir, 0755); err2 != nil {
				return "", err2
			}
		}
	}

	if err := afero.WriteFile(s.fs, file, buf.Bytes(), 0644); err != nil {
		return "", err
	}

	s.log.With(
		zap.String("file", file),
		zap.String("size", bytesize.New(float64(buf.Len())).String()),
	).Debug("image saved")

	return file, nil
}

func (s *Store) Exists(name string) (bool, error) {
	return afero.Exists(s.fs, Filename(name))
}

func (s *Store) Open(name string) (afero.File, error) {
	return s.fs.Open(Filename(name))
}

func (s *Store) LoadImage(name string) (image.Image, error) {
	bs, err := afero.ReadFile(s.fs, Filename(name))
	if err != nil {
		return nil, err
	}

	img, err := png.Decode(bytes.NewBuffer(bs))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	return img, nil
}
