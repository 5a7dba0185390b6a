package overlay

type FontOption func(r *FontResolver)

func WithFontPath(path string) FontOption {
	return func(r *FontResolver) {
		r.path = path
	}
}

func WithFontSize(size float64) FontOption {
	return func(r *FontResolver) {
		r.size = size
	}
}
