// Package output formats CLI messages.
package output

import (
	"fmt"
	"io"
	"time"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) ProjectListHeader() {
	fmt.Fprintf(f.w, "🎬 Projects:\n\n")
}

func (f *Formatter) ProjectListItem(id int64, name string, segments int, modified time.Time) {
	fmt.Fprintf(f.w, "  %-12d %-20s %3d segments  %s\n",
		id, name, segments, modified.Local().Format("2006-01-02 15:04"))
}

func (f *Formatter) SegmentRecorded(order int, uri string) {
	fmt.Fprintf(f.w, "🎥 Segment %d recorded: %s\n", order, uri)
}

func (f *Formatter) Playing(count int) {
	fmt.Fprintf(f.w, "▶️  Playing %d segments back-to-back\n", count)
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}
