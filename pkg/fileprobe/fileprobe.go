// Package fileprobe inspects a single filesystem path: whether it exists,
// what kind of entry it is, how long ago it was modified and whether it
// contains a given string.
package fileprobe

import (
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type FileProbe struct {
	path  string
	fs    afero.Fs
	clock Clock
}

type Option func(*FileProbe)

// WithFs replaces the OS filesystem the probe reads from.
func WithFs(fs afero.Fs) Option {
	return func(p *FileProbe) {
		p.fs = fs
	}
}

func WithClock(c Clock) Option {
	return func(p *FileProbe) {
		p.clock = c
	}
}

func New(path string, opts ...Option) *FileProbe {
	p := &FileProbe{
		path:  path,
		fs:    afero.NewOsFs(),
		clock: wallClock,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *FileProbe) Path() string {
	return p.path
}

func (p *FileProbe) Exists() bool {
	ok, err := afero.Exists(p.fs, p.path)
	return ok && err == nil
}

func (p *FileProbe) IsFile() bool {
	stat, err := p.fs.Stat(p.path)
	if err != nil {
		return false
	}

	return stat.Mode().IsRegular()
}

func (p *FileProbe) IsDirectory() bool {
	ok, err := afero.IsDir(p.fs, p.path)
	return ok && err == nil
}

// AgeInHours returns the number of whole hours elapsed since the last
// modification of the path.
func (p *FileProbe) AgeInHours() (int64, error) {
	stat, err := p.stat()
	if err != nil {
		return 0, err
	}

	elapsed := p.clock.Now().Sub(stat.ModTime())
	return int64(math.Floor(elapsed.Hours())), nil
}

func (p *FileProbe) CheckAge(thresholdHours int64) error {
	hours, err := p.AgeInHours()
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"kind": "probe", "path": p.path, "age": hours, "threshold": thresholdHours}).Debug("checked file age")

	if hours > thresholdHours {
		return &StaleFileError{Path: p.path, Hours: hours}
	}

	return nil
}

func (p *FileProbe) CheckContent(substring string) error {
	content, err := p.read()
	if err != nil {
		return err
	}

	if !strings.Contains(content, substring) {
		return &MissingContentError{Path: p.path, Substring: substring}
	}

	log.WithFields(log.Fields{"kind": "probe", "path": p.path, "substring": substring}).Debug("found expected content")
	return nil
}

func (p *FileProbe) stat() (os.FileInfo, error) {
	stat, err := p.fs.Stat(p.path)
	if os.IsNotExist(err) {
		return nil, &NotFoundError{Path: p.path}
	} else if err != nil {
		return nil, &ReadError{Path: p.path, Err: err}
	}

	return stat, nil
}

// read returns the text content of the file with its lines joined by "\n".
// Line terminators are kept on each line before joining, so a file
// "a\nb" reads as "a\n\nb".
func (p *FileProbe) read() (string, error) {
	stat, err := p.stat()
	if err != nil {
		return "", err
	}

	if stat.IsDir() {
		return "", &ReadError{Path: p.path, Err: ErrIsDirectory}
	}

	f, err := p.fs.Open(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Path: p.path}
		}
		return "", &ReadError{Path: p.path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", &ReadError{Path: p.path, Err: err}
	}

	if !utf8.Valid(data) {
		return "", &ReadError{Path: p.path, Err: ErrInvalidUTF8}
	}

	return strings.Join(splitLines(string(data)), "\n"), nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.SplitAfter(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
