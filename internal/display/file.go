package display

import (
	"errors"
	"os"

	"github.com/markusressel/temp2go/internal/ui"
	"github.com/markusressel/temp2go/internal/util"
)

// FileSink writes every label to a file, for bars that read their blocks from disk.
type FileSink struct {
	Path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path}
}

func (f *FileSink) SetText(text string) {
	err := util.WriteStringToFileAtomic(text+"\n", f.Path)
	if err != nil {
		ui.Warning("Unable to write label to %s: %v", f.Path, err)
	}
}

// Release removes the file, so a bar doesn't show stale values
func (f *FileSink) Release() {
	err := os.Remove(f.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		ui.Warning("Unable to remove %s: %v", f.Path, err)
	}
}
