package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"promptframe/pkg/diffusion"
	"promptframe/pkg/gallery"
	"promptframe/pkg/overlay"
	"promptframe/pkg/studio"
)

var description = flag.String("description", "", "image description (also used as the caption)")
var filename = flag.String("filename", "", "output file name, .png appended if missing")
var galleryDir = flag.String("gallery", ".", "gallery root dir")
var cacheDir = flag.String("cache", "", "render cache dir")
var width = flag.Int("width", 512, "output width")
var height = flag.Int("height", 512, "output height")
var model = flag.String("model", diffusion.DefaultModel, "inference model id")
var hfToken = flag.String("hf-token", "", "inference api token (fallback: HUGGINGFACE_TOKEN)")
var fontPath = flag.String("font", "", "caption font file")
var fontSize = flag.Float64("font-size", 30, "caption font size")
var noOverlay = flag.Bool("no-overlay", false, "skip the caption overlay")
var timeout = flag.String("timeout", "5m", "generation timeout")

func main() {
	flag.Parse()

	if *description == "" {
		log.Fatal("description is required")
	}

	wait, err := time.ParseDuration(*timeout)
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewDevelopment()

	token := *hfToken
	if token == "" {
		token = os.Getenv("HUGGINGFACE_TOKEN")
	}

	store, err := gallery.NewStore(*galleryDir, logger)
	if err != nil {
		log.Fatal(err)
	}

	cache, err := gallery.NewCache(*cacheDir)
	if err != nil {
		log.Fatal(err)
	}

	comp := overlay.NewCompositor(overlay.NewFontResolver(
		logger,
		overlay.WithFontPath(*fontPath),
		overlay.WithFontSize(*fontSize),
	))

	params := studio.NewParams(*width, *height)
	params.SetOverlay(!*noOverlay)

	cli := diffusion.NewClient(diffusion.Config{Token: token, Model: *model}, logger)
	st := studio.New(cli, comp, store, params, logger, studio.WithCache(cache))

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	saved, err := st.Generate(ctx, *description, *filename)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Image saved to gallery as %s\n", saved)
}
