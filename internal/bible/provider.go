// Package bible serves chapter content and free-text search over the
// bundled translation, and defines the verse id format shared with the
// bookmark and study stores.
package bible

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

//go:embed data/verses.json
var assetFS embed.FS

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrChapterNotFound = errors.New("chapter not available")
)

type Verse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

type Chapter struct {
	Book   string  `json:"book"`
	Number int     `json:"number"`
	Verses []Verse `json:"verses"`
}

// Provider loads the content asset once and answers chapter lookups from
// memory. The asset maps "Book Chapter" keys to verse lists.
type Provider struct {
	chapters map[string][]Verse
}

func NewProvider() (*Provider, error) {
	raw, err := assetFS.ReadFile("data/verses.json")
	if err != nil {
		return nil, fmt.Errorf("read content asset: %w", err)
	}

	chapters := make(map[string][]Verse)
	if err := json.Unmarshal(raw, &chapters); err != nil {
		return nil, fmt.Errorf("parse content asset: %w", err)
	}

	return &Provider{chapters: chapters}, nil
}

func chapterKey(book string, chapter int) string {
	return book + " " + strconv.Itoa(chapter)
}

// Chapter returns the verses for one chapter. Unknown books and chapters
// outside the canon come back as distinguishable errors, never a panic.
func (p *Provider) Chapter(ctx context.Context, book string, chapter int) (*Chapter, error) {
	count := ChapterCount(book)
	if count == 0 {
		return nil, fmt.Errorf("%w: %q", ErrBookNotFound, book)
	}
	if chapter < 1 || chapter > count {
		return nil, fmt.Errorf("%w: %s %d", ErrChapterNotFound, book, chapter)
	}

	verses, ok := p.chapters[chapterKey(book, chapter)]
	if !ok {
		// Canonical chapter the bundled asset doesn't carry.
		return nil, fmt.Errorf("%w: %s %d", ErrChapterNotFound, book, chapter)
	}

	out := make([]Verse, len(verses))
	copy(out, verses)
	return &Chapter{Book: book, Number: chapter, Verses: out}, nil
}

// AvailableChapters lists the chapters the bundled asset actually contains,
// in canon order. Mostly useful for clients building their navigation.
func (p *Provider) AvailableChapters() []string {
	keys := make([]string, 0, len(p.chapters))
	for k := range p.chapters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
