package commands

import (
	"sync"

	"github.com/tilesnake/engine/rules"
)

// frameHolder collects frames arriving over the socket while the replay
// reads them.
type frameHolder struct {
	sync.RWMutex
	frames []*rules.Frame
	ffc    chan *rules.Frame
	once   sync.Once
}

func (fh *frameHolder) first() chan *rules.Frame {
	fh.once.Do(func() { fh.ffc = make(chan *rules.Frame, 1) })
	return fh.ffc
}

func (fh *frameHolder) append(frame *rules.Frame) {
	fh.Lock()
	defer fh.Unlock()

	if len(fh.frames) == 0 {
		ffc := fh.first()
		ffc <- frame
		close(ffc)
	}

	fh.frames = append(fh.frames, frame)
}

func (fh *frameHolder) get(index int) *rules.Frame {
	fh.RLock()
	defer fh.RUnlock()

	if index < 0 || index >= len(fh.frames) {
		return nil
	}

	return fh.frames[index]
}

func (fh *frameHolder) initialFrame() <-chan *rules.Frame {
	return fh.first()
}

func (fh *frameHolder) count() int {
	fh.RLock()
	defer fh.RUnlock()

	return len(fh.frames)
}
