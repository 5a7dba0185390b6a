package overlay

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

const dejavuBold = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"

func NewFontResolver(logger *zap.Logger, opts ...FontOption) *FontResolver {
	r := &FontResolver{
		log:      logger,
		platform: dejavuBold,
		size:     30,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// FontResolver picks the first usable face from an ordered tier list:
// configured font file, platform DejaVu Bold, built-in bitmap face.
// The built-in tier always succeeds, so Resolve never fails.
type FontResolver struct {
	log      *zap.Logger
	path     string
	platform string
	size     float64

	once sync.Once
	face font.Face
}

type fontTier struct {
	name string
	load func() (font.Face, error)
}

func (r *FontResolver) tiers() []fontTier {
	var ts []fontTier

	if r.path != "" {
		ts = append(ts, fontTier{
			name: "configured",
			load: func() (font.Face, error) { return loadTrueType(r.path, r.size) },
		})
	}

	ts = append(ts, fontTier{
		name: "platform",
		load: func() (font.Face, error) { return loadTrueType(r.platform, r.size) },
	})

	ts = append(ts, fontTier{
		name: "builtin",
		load: func() (font.Face, error) { return basicfont.Face7x13, nil },
	})

	return ts
}

// Resolve walks the tiers once and caches the winner; the cached face is
// read-only afterwards.
func (r *FontResolver) Resolve() font.Face {
	r.once.Do(func() {
		for _, t := range r.tiers() {
			face, err := t.load()
			if err != nil {
				r.log.With(zap.String("tier", t.name), zap.Error(err)).Info("font tier unavailable")
				continue
			}

			r.face = face
			return
		}
	})

	return r.face
}

func loadTrueType(path string, size float64) (font.Face, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f, err := opentype.Parse(bs)
	if err != nil {
		return nil, err
	}

	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
