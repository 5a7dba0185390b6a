package web

import (
	"context"
	"log"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Serve mounts the handler on the server and ties its lifetime to the fx
// application.
func Serve(h *Handler, srv *http.Server, lifecycle fx.Lifecycle) error {
	if srv.Addr == "" {
		return errors.New("no listen addr")
	}

	srv.Handler = h.Routes()

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != http.ErrServerClosed {
					log.Fatal(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return nil
}
