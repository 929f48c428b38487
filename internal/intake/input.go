package intake

import (
	"context"
	"os"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/soyeahso/sasagent/internal/hooks"
)

// File is a candidate document.
type File struct {
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
	Size int64  `json:"size"`
}

// Open opens the file's content on disk.
func (f File) Open() (*os.File, error) {
	return os.Open(f.Path)
}

// FileFromPath stats path and describes it as a File.
func FileFromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	return File{Name: info.Name(), Path: path, Size: info.Size()}, nil
}

// FileInput holds the current selection of a file-selection control. Every
// change is announced as hooks.EventFilesChanged.
type FileInput struct {
	name  string
	hooks *hooks.Manager

	mu    sync.Mutex
	files []File
}

// NewFileInput creates an empty input. name identifies it in events.
func NewFileInput(name string, h *hooks.Manager) *FileInput {
	return &FileInput{name: name, hooks: h}
}

// Name returns the input's identifier.
func (in *FileInput) Name() string {
	return in.name
}

// Files returns a copy of the current selection.
func (in *FileInput) Files() []File {
	in.mu.Lock()
	defer in.mu.Unlock()
	return append([]File(nil), in.files...)
}

// Select replaces the selection, as a manual picker does, and raises a
// change event. No filtering is applied.
func (in *FileInput) Select(ctx context.Context, files []File) {
	in.set(ctx, files)
}

func (in *FileInput) set(ctx context.Context, files []File) {
	selected := append([]File(nil), files...)

	in.mu.Lock()
	in.files = selected
	in.mu.Unlock()

	if in.hooks == nil {
		return
	}
	in.hooks.Emit(ctx, hooks.EventFilesChanged, map[string]any{
		"input":     in.name,
		"selection": ulid.Make().String(),
		"files":     append([]File(nil), selected...),
	})
}

// FilesFromPayload extracts the selection carried by a files_changed event.
func FilesFromPayload(p hooks.Payload) []File {
	files, _ := p.Data["files"].([]File)
	return files
}
