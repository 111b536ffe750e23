package bible

import (
	"fmt"
	"strconv"
	"strings"
)

// Verse ids are "Book:Chapter:Verse", e.g. "Genesis:1:1". The stores treat
// the id as an opaque key; only renderers parse it back apart.

const verseIDSep = ":"

// FormatVerseID builds the canonical verse id. Equal ids mean equal
// (book, chapter, verse) triples; book names never contain the separator.
func FormatVerseID(book string, chapter, verse int) string {
	return book + verseIDSep + strconv.Itoa(chapter) + verseIDSep + strconv.Itoa(verse)
}

// ParseVerseID splits a verse id back into its components. Only collaborators
// that render references need this; stores never call it.
func ParseVerseID(id string) (book string, chapter, verse int, err error) {
	parts := strings.Split(id, verseIDSep)
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("malformed verse id %q", id)
	}
	chapter, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed verse id %q: bad chapter", id)
	}
	verse, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed verse id %q: bad verse", id)
	}
	if parts[0] == "" || chapter < 1 || verse < 1 {
		return "", 0, 0, fmt.Errorf("malformed verse id %q", id)
	}
	return parts[0], chapter, verse, nil
}
