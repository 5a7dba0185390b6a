package main

import (
	"context"
	"net/http"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"promptframe/pkg/diffusion"
	"promptframe/pkg/gallery"
	"promptframe/pkg/overlay"
	"promptframe/pkg/studio"
	"promptframe/pkg/web"
)

var listen = flag.String("listen", ":9123", "listen addr")
var galleryDir = flag.String("gallery", ".", "gallery root dir")
var cacheDir = flag.String("cache", "", "render cache dir")
var width = flag.Int("width", 512, "output width")
var height = flag.Int("height", 512, "output height")
var model = flag.String("model", diffusion.DefaultModel, "inference model id")
var hfToken = flag.String("hf-token", "", "inference api token (fallback: HUGGINGFACE_TOKEN)")
var fontPath = flag.String("font", "", "caption font file")
var fontSize = flag.Float64("font-size", 30, "caption font size")
var tgToken = flag.String("tg-token", "", "telegram bot token")

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			func() (*zap.Logger, error) {
				return zap.NewDevelopment()
			},
			func(logger *zap.Logger) (*diffusion.Client, *http.Server) {
				token := *hfToken
				if token == "" {
					token = os.Getenv("HUGGINGFACE_TOKEN")
				}
				return diffusion.NewClient(diffusion.Config{Token: token, Model: *model}, logger),
					&http.Server{Addr: *listen}
			},
			func(logger *zap.Logger) (*gallery.Store, error) {
				return gallery.NewStore(*galleryDir, logger)
			},
			func() (*gallery.Cache, error) {
				return gallery.NewCache(*cacheDir)
			},
			func(logger *zap.Logger) *overlay.Compositor {
				return overlay.NewCompositor(overlay.NewFontResolver(
					logger,
					overlay.WithFontPath(*fontPath),
					overlay.WithFontSize(*fontSize),
				))
			},
			func(cli *diffusion.Client, comp *overlay.Compositor, store *gallery.Store, cache *gallery.Cache, logger *zap.Logger) *studio.Studio {
				return studio.New(cli, comp, store, studio.NewParams(*width, *height), logger, studio.WithCache(cache))
			},
			func(st *studio.Studio, store *gallery.Store, logger *zap.Logger) *web.Handler {
				return web.NewHandler(st, store, logger)
			},
		),
		fx.Invoke(
			web.Serve,
			startBot,
		),
	).Run()
}

func startBot(st *studio.Studio, store *gallery.Store, lifecycle fx.Lifecycle) error {
	if *tgToken == "" {
		return nil
	}

	bot, err := studio.NewBot(*tgToken, st, store)
	if err != nil {
		return err
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			bot.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			bot.Stop()
			return nil
		},
	})

	return nil
}
