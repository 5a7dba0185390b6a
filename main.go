package main

import (
	"os"

	"go.uber.org/zap"

	"promptframe/internal/utils"
	"promptframe/pkg/gallery"
	"promptframe/pkg/overlay"
)

func main() {
	if len(os.Args) < 3 {
		panic("usage: promptframe <image> <caption>")
	}

	logger, _ := zap.NewDevelopment()

	img, err := utils.OpenImage(os.Args[1])
	if err != nil {
		panic(err)
	}

	comp := overlay.NewCompositor(overlay.NewFontResolver(logger))
	out := comp.Compose(img, os.Args[2])

	if err := utils.SaveImage(gallery.Filename(os.Args[1]+".captioned"), out); err != nil {
		panic(err)
	}
}
