package studio

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/inhies/go-bytesize"
	tele "gopkg.in/telebot.v3"

	"promptframe/pkg/gallery"
)

func NewBot(token string, st *Studio, store *gallery.Store) (*Bot, error) {
	pref := tele.Settings{
		Token: token,
		Poller: &tele.LongPoller{
			Timeout: 30 * time.Second,
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	return &Bot{
		b:     b,
		st:    st,
		store: store,
	}, nil
}

// Bot exposes the generation pipeline over Telegram chat.
type Bot struct {
	b     *tele.Bot
	st    *Studio
	store *gallery.Store
}

func (b *Bot) sendFile(c tele.Context, file string) error {
	f, err := b.store.Open(file)
	if err != nil {
		return c.Reply(fmt.Sprintf("open failed: %s", err))
	}

	defer func() {
		_ = f.Close()
	}()

	return c.Reply(&tele.Photo{
		File:    tele.FromReader(f),
		Caption: file,
	})
}

func (b *Bot) handleGenerate() {
	b.b.Handle("/generate", func(c tele.Context) error {
		prompt := c.Message().Payload
		if prompt == "" {
			return c.Reply("Usage: /generate <description>")
		}

		file, err := b.st.Generate(context.Background(), prompt, "")
		if err != nil {
			return c.Reply(fmt.Sprintf("generate failed: %s", err))
		}

		return b.sendFile(c, file)
	})

	b.b.Handle("/last", func(c tele.Context) error {
		log := b.st.History().Curr()
		if log == nil {
			return c.Reply("Nothing generated yet")
		}

		return b.sendFile(c, log.File)
	})

	b.b.Handle("/logs", func(c tele.Context) error {
		var lines []string
		for _, log := range b.st.History().Logs() {
			lines = append(lines, fmt.Sprintf("%s <- %q", log.File, log.Prompt))
		}
		if len(lines) == 0 {
			return c.Reply("Nothing generated yet")
		}

		return c.Reply(strings.Join(lines, "\n"))
	})
}

func (b *Bot) handleConfig() {
	b.b.Handle("/size", func(c tele.Context) error {
		in := c.Message().Payload
		if in == "" {
			w, h := b.st.Params().Size()
			return c.Reply(fmt.Sprintf("%dx%d", w, h))
		}

		parts := strings.SplitN(in, "x", 2)
		if len(parts) != 2 {
			return c.Reply("Usage: /size <width>x<height>")
		}

		w, errW := strconv.Atoi(parts[0])
		h, errH := strconv.Atoi(parts[1])
		if errW != nil || errH != nil || w <= 0 || h <= 0 {
			return c.Reply("Usage: /size <width>x<height>")
		}

		b.st.Params().SetSize(w, h)
		return c.Reply("OK")
	})

	b.b.Handle("/overlay", func(c tele.Context) error {
		switch c.Message().Payload {
		case "":
			if b.st.Params().OverlayEnabled() {
				return c.Reply("on")
			}
			return c.Reply("off")
		case "on":
			b.st.Params().SetOverlay(true)
		case "off":
			b.st.Params().SetOverlay(false)
		default:
			return c.Reply("Usage: /overlay on|off")
		}
		return c.Reply("OK")
	})

	b.b.Handle("/model", func(c tele.Context) error {
		return c.Reply(b.st.Model())
	})

	b.b.Handle("/info", func(c tele.Context) error {
		log := b.st.History().Curr()
		if log == nil {
			return c.Reply("Nothing generated yet")
		}

		f, err := b.store.Open(log.File)
		if err != nil {
			return c.Reply(fmt.Sprintf("open failed: %s", err))
		}

		defer func() {
			_ = f.Close()
		}()

		stat, err := f.Stat()
		if err != nil {
			return c.Reply(fmt.Sprintf("stat failed: %s", err))
		}

		lines := []string{
			fmt.Sprintf("Prompt: %s", log.Prompt),
			fmt.Sprintf("File: %s", log.File),
			fmt.Sprintf("File size: %s", bytesize.New(float64(stat.Size())).String()),
			fmt.Sprintf("Cached: %t", log.Cached),
		}

		return c.Reply(strings.Join(lines, "\n"))
	})
}

func (b *Bot) Start() {
	b.handleGenerate()
	b.handleConfig()
	go b.b.Start()
}

func (b *Bot) Stop() {
	go b.b.Stop()
}
