package intake

import (
	"context"
	"sync"

	"github.com/soyeahso/sasagent/internal/config"
	"github.com/soyeahso/sasagent/internal/logging"
)

// EventType is a drag-and-drop event kind.
type EventType int

const (
	DragEnter EventType = iota
	DragOver
	DragLeave
	Drop
)

func (t EventType) String() string {
	switch t {
	case DragEnter:
		return "dragenter"
	case DragOver:
		return "dragover"
	case DragLeave:
		return "dragleave"
	case Drop:
		return "drop"
	}
	return "unknown"
}

// Event is one drag-and-drop event delivered to a DropZone. Files is only
// meaningful for Drop.
type Event struct {
	Type  EventType
	Files []File

	DefaultPrevented   bool
	PropagationStopped bool
}

// DropZone accepts dragged files and forwards the valid ones to a target
// FileInput. It is highlighted between enter/over and leave/drop.
type DropZone struct {
	target     *FileInput
	extensions []string
	log        *logging.Logger

	mu          sync.Mutex
	highlighted bool
}

// NewDropZone creates a zone feeding target. An empty extensions list
// means config.DefaultExtensions.
func NewDropZone(target *FileInput, extensions []string, log *logging.Logger) *DropZone {
	if len(extensions) == 0 {
		extensions = config.DefaultExtensions
	}
	return &DropZone{
		target:     target,
		extensions: append([]string(nil), extensions...),
		log:        log.Sub("dropzone"),
	}
}

// Highlighted reports the zone's visual state.
func (z *DropZone) Highlighted() bool {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.highlighted
}

// Handle processes one event. Default platform behavior is suppressed for
// every event kind.
func (z *DropZone) Handle(ctx context.Context, ev *Event) {
	ev.DefaultPrevented = true
	ev.PropagationStopped = true

	z.mu.Lock()
	switch ev.Type {
	case DragEnter, DragOver:
		z.highlighted = true
	case DragLeave, Drop:
		z.highlighted = false
	}
	z.mu.Unlock()

	if ev.Type == Drop {
		z.drop(ctx, ev.Files)
	}
}

// Enter is Handle with a DragEnter event.
func (z *DropZone) Enter(ctx context.Context) {
	z.Handle(ctx, &Event{Type: DragEnter})
}

// Leave is Handle with a DragLeave event.
func (z *DropZone) Leave(ctx context.Context) {
	z.Handle(ctx, &Event{Type: DragLeave})
}

// DropFiles is Handle with a Drop event carrying files.
func (z *DropZone) DropFiles(ctx context.Context, files []File) {
	z.Handle(ctx, &Event{Type: Drop, Files: files})
}

// drop installs the accepted subset into the target. Rejected files are
// left out without notice. An empty drop changes nothing.
func (z *DropZone) drop(ctx context.Context, files []File) {
	if z.target == nil || len(files) == 0 {
		return
	}

	accepted := Filter(files, z.extensions)
	if rejected := len(files) - len(accepted); rejected > 0 {
		z.log.Debug().Int("rejected", rejected).Int("accepted", len(accepted)).Msg("dropped files filtered")
	}
	z.target.set(ctx, accepted)
}

// Filter returns the files whose names end in one of exts.
func Filter(files []File, exts []string) []File {
	accepted := make([]File, 0, len(files))
	for _, f := range files {
		if HasExtension(f.Name, exts) {
			accepted = append(accepted, f)
		}
	}
	return accepted
}
