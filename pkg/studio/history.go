package studio

import (
	"image"
	"sync"

	"github.com/samber/lo"
)

func NewHistory() *History {
	return &History{max: 3}
}

// History keeps the last few generation results for the bot's /last and
// /prev commands.
type History struct {
	l     sync.Mutex
	max   int
	items []*HistoryLog
}

type HistoryLog struct {
	Prompt string
	File   string
	Image  image.Image
	Cached bool
}

func (h *History) Add(item *HistoryLog) {
	h.l.Lock()
	defer h.l.Unlock()

	h.items = append(h.items, item)
	if len(h.items) > h.max {
		h.items = h.items[1:]
	}
}

func (h *History) Logs() []*HistoryLog {
	h.l.Lock()
	defer h.l.Unlock()
	return append([]*HistoryLog(nil), h.items...)
}

func (h *History) Curr() *HistoryLog {
	h.l.Lock()
	defer h.l.Unlock()

	log, _ := lo.Last(h.items)
	return log
}

func (h *History) Prev() *HistoryLog {
	h.l.Lock()
	defer h.l.Unlock()

	log, _ := lo.Nth(h.items, -2)
	return log
}
