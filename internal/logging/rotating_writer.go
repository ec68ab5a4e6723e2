package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// RotatingFileWriter is an io.WriteCloser with size-based rotation.
// When a write would push the current file past maxSize, the file is
// renamed to a numbered backup (name.1, name.2, ...) and a fresh file
// is started; the oldest backup beyond maxBackups is removed.
type RotatingFileWriter struct {
	mu         sync.Mutex
	file       *os.File
	filePath   string
	maxSize    int64
	maxBackups int
	size       int64
}

// NewRotatingFileWriter opens (or creates) the log file at filePath.
func NewRotatingFileWriter(filePath string, maxSize int64, maxBackups int) (*RotatingFileWriter, error) {
	w := &RotatingFileWriter{
		filePath:   filePath,
		maxSize:    maxSize,
		maxBackups: maxBackups,
	}

	if err := w.open(); err != nil {
		return nil, err
	}

	info, err := w.file.Stat()
	if err != nil {
		_ = w.file.Close()
		return nil, err
	}
	w.size = info.Size()

	return w, nil
}

// Write implements io.Writer
func (w *RotatingFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.size+int64(len(p)) > w.maxSize {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

// Close closes the current log file.
func (w *RotatingFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	return w.file.Close()
}

func (w *RotatingFileWriter) open() error {
	file, err := os.OpenFile(w.filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	w.file = file
	return nil
}

// rotate shifts existing backups up by one index and restarts the
// active file. The backup at maxBackups falls off the end.
func (w *RotatingFileWriter) rotate() error {
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			return err
		}
	}

	_ = os.Remove(w.backupName(w.maxBackups))
	for i := w.maxBackups - 1; i >= 1; i-- {
		from := w.backupName(i)
		if _, err := os.Stat(from); err == nil {
			if err := os.Rename(from, w.backupName(i+1)); err != nil {
				return err
			}
		}
	}

	// The active file may not exist when rotation races file removal;
	// a failed rename just means starting fresh.
	_ = os.Rename(w.filePath, w.backupName(1))

	if err := w.open(); err != nil {
		return err
	}

	w.size = 0
	return nil
}

func (w *RotatingFileWriter) backupName(index int) string {
	return fmt.Sprintf("%s.%d", w.filePath, index)
}

// Ensure RotatingFileWriter implements io.WriteCloser
var _ io.WriteCloser = (*RotatingFileWriter)(nil)
