package util

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/afero"
)

// ReadStringFromFile reads the whole file and trims surrounding whitespace
func ReadStringFromFile(fs afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func ReadIntFromFile(fs afero.Fs, path string) (value int, err error) {
	text, err := ReadStringFromFile(fs, path)
	if err != nil {
		return -1, err
	}
	if len(text) <= 0 {
		return -1, fmt.Errorf("file is empty: %s", path)
	}
	return strconv.Atoi(text)
}

// WriteStringToFileAtomic replaces the content of the file at path, readers never see a partial write
func WriteStringToFileAtomic(value string, path string) error {
	evaluatedPath, err := filepath.EvalSymlinks(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}
	return atomic.WriteFile(path, strings.NewReader(value))
}
