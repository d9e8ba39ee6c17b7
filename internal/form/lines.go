package form

import (
	"fmt"
	"strings"

	"github.com/dangerclosesec/jobdesk/internal/domain"
)

// Lines is a list-shaped field edited one line at a time. An editable list
// always holds at least one (possibly empty) line.
type Lines []string

// lineBreaks folds CRLF and bare CR into LF.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NewLines returns a list holding a single empty line.
func NewLines() Lines {
	return Lines{""}
}

// ParseLines splits raw line-delimited text into editable lines. Empty lines
// are kept so the editor shows exactly what was typed.
func ParseLines(text string) Lines {
	return Lines(strings.Split(lineBreaks.Replace(text), "\n"))
}

// LinesFromList turns a persisted ordered list back into editable lines.
func LinesFromList(items []string) Lines {
	if len(items) == 0 {
		return NewLines()
	}
	out := make(Lines, len(items))
	copy(out, items)
	return out
}

// Text joins the lines back into line-delimited text.
func (l Lines) Text() string {
	return strings.Join(l, "\n")
}

// List returns the ordered non-empty entries, the shape persisted in the
// record stores.
func (l Lines) List() []string {
	out := make([]string, 0, len(l))
	for _, line := range l {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Add appends an empty line.
func (l *Lines) Add() {
	*l = append(*l, "")
}

// Remove deletes the line at index i. Removing the last remaining line
// leaves a single empty line.
func (l *Lines) Remove(i int) error {
	if err := l.check(i); err != nil {
		return err
	}
	*l = append((*l)[:i], (*l)[i+1:]...)
	if len(*l) == 0 {
		*l = NewLines()
	}
	return nil
}

// Set replaces the line at index i.
func (l *Lines) Set(i int, value string) error {
	if err := l.check(i); err != nil {
		return err
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("%w: a line must not contain line breaks", domain.ErrInvalidInput)
	}
	(*l)[i] = value
	return nil
}

func (l *Lines) check(i int) error {
	if i < 0 || i >= len(*l) {
		return fmt.Errorf("%w: line %d of %d", domain.ErrIndexOutOfRange, i, len(*l))
	}
	return nil
}

func (l *Lines) normalize() {
	if len(*l) == 0 {
		*l = NewLines()
	}
}
