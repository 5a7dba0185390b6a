package studio

import (
	"sync"
)

func NewParams(width, height int) *Params {
	return &Params{
		overlay: true,
		width:   width,
		height:  height,
	}
}

// Params holds the runtime settings the bot and web surface may change
// between generations.
type Params struct {
	l sync.RWMutex

	overlay bool
	width   int
	height  int
}

func (p *Params) Size() (int, int) {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.width, p.height
}

func (p *Params) SetSize(width, height int) {
	p.l.Lock()
	defer p.l.Unlock()
	p.width = width
	p.height = height
}

func (p *Params) OverlayEnabled() bool {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.overlay
}

func (p *Params) SetOverlay(enabled bool) {
	p.l.Lock()
	defer p.l.Unlock()
	p.overlay = enabled
}
