package study

import (
	"strconv"
	"sync/atomic"
	"time"
)

// Note is long-form commentary on a verse. A verse can carry any number
// of notes.
type Note struct {
	ID        string `json:"id"`
	VerseID   string `json:"verseId"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// Highlight is the single color slot a verse can hold. Color is the
// concrete RGBA value, resolved from the palette at write time.
type Highlight struct {
	ID        string `json:"id"`
	VerseID   string `json:"verseId"`
	Color     string `json:"color"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
}

// Annotation is a quick margin remark. Structurally a Note, but kept as its
// own record type and collection; the reader surfaces them differently.
type Annotation struct {
	ID        string `json:"id"`
	VerseID   string `json:"verseId"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// CrossReference is a directed edge between two verses with an optional
// note. Lookup is symmetric: either endpoint finds the edge.
type CrossReference struct {
	ID            string `json:"id"`
	SourceVerseID string `json:"sourceVerseId"`
	TargetVerseID string `json:"targetVerseId"`
	Note          string `json:"note,omitempty"`
	CreatedAt     int64  `json:"createdAt"`
}

// HighlightColor names one of the five palette entries.
type HighlightColor string

const (
	ColorYellow HighlightColor = "yellow"
	ColorGreen  HighlightColor = "green"
	ColorBlue   HighlightColor = "blue"
	ColorPink   HighlightColor = "pink"
	ColorPurple HighlightColor = "purple"
)

// highlightColors maps palette names to the RGBA values stored on the
// record (each carries 50% alpha for rendering over text).
var highlightColors = map[HighlightColor]string{
	ColorYellow: "#FFEB3B80",
	ColorGreen:  "#4CAF5080",
	ColorBlue:   "#2196F380",
	ColorPink:   "#E91E6380",
	ColorPurple: "#9C27B080",
}

// HighlightPalette returns the color name -> RGBA mapping for clients that
// render a picker.
func HighlightPalette() map[HighlightColor]string {
	out := make(map[HighlightColor]string, len(highlightColors))
	for name, hex := range highlightColors {
		out[name] = hex
	}
	return out
}

var lastRecordID int64

// newRecordID returns a time-based id. The CAS loop keeps ids unique even
// when two records are created in the same nanosecond.
func newRecordID() string {
	id := time.Now().UnixNano()
	for {
		last := atomic.LoadInt64(&lastRecordID)
		if id <= last {
			id = last + 1
		}
		if atomic.CompareAndSwapInt64(&lastRecordID, last, id) {
			return strconv.FormatInt(id, 10)
		}
	}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
