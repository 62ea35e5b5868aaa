package fileprobe

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAny       Type = "any"
	TypeFile      Type = "file"
	TypeDirectory Type = "directory"
)

func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return TypeAny, nil
	case "file", "f":
		return TypeFile, nil
	case "directory", "dir", "d":
		return TypeDirectory, nil
	}

	return "", fmt.Errorf("unknown path type %q (expected one of any, file, directory)", s)
}

// Check is a declarative combination of probe operations. A nil MaxAgeHours
// skips the age check, an empty Contains skips the content check.
type Check struct {
	Path        string
	Type        Type
	MaxAgeHours *int64
	Contains    string
}

// Run executes the type gate, the age check and the content check in that
// order and returns the first failure.
func (c Check) Run(p *FileProbe) error {
	switch c.Type {
	case TypeFile:
		if !p.IsFile() {
			return &NotFoundError{Path: p.Path(), Type: TypeFile}
		}
	case TypeDirectory:
		if !p.IsDirectory() {
			return &NotFoundError{Path: p.Path(), Type: TypeDirectory}
		}
	default:
		if !p.Exists() {
			return &NotFoundError{Path: p.Path()}
		}
	}

	if c.MaxAgeHours != nil {
		if err := p.CheckAge(*c.MaxAgeHours); err != nil {
			return err
		}
	}

	if c.Contains != "" {
		if err := p.CheckContent(c.Contains); err != nil {
			return err
		}
	}

	return nil
}

// Describe renders a short summary used in OK messages.
func (c Check) Describe() string {
	var b strings.Builder

	switch c.Type {
	case TypeDirectory:
		fmt.Fprintf(&b, "Directory %s exists", c.Path)
	case TypeFile:
		fmt.Fprintf(&b, "File %s exists", c.Path)
	default:
		fmt.Fprintf(&b, "Path %s exists", c.Path)
	}

	if c.MaxAgeHours != nil {
		fmt.Fprintf(&b, ", modified within %d hours", *c.MaxAgeHours)
	}

	if c.Contains != "" {
		fmt.Fprintf(&b, ", contains '%s'", c.Contains)
	}

	return b.String()
}
