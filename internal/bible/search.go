package bible

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
)

// ErrEmptyQuery distinguishes a malformed request from a search that simply
// matched nothing; "no results" is not an error state.
var ErrEmptyQuery = errors.New("search query is empty")

type SearchResult struct {
	ID          string `json:"id"`
	Book        string `json:"book"`
	Chapter     int    `json:"chapter"`
	Verse       int    `json:"verse"`
	Text        string `json:"text"`
	MatchedTerm string `json:"matched_term"`
}

// Search scans every bundled verse for the query, case-insensitively.
// Results come back in canon order. An empty slice with a nil error means
// the query ran fine and matched nothing.
func (p *Provider) Search(ctx context.Context, query string) ([]SearchResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, ErrEmptyQuery
	}
	needle := strings.ToLower(trimmed)

	results := []SearchResult{}
	for key, verses := range p.chapters {
		book, chapter, ok := splitChapterKey(key)
		if !ok {
			continue
		}
		for _, v := range verses {
			if !strings.Contains(strings.ToLower(v.Text), needle) {
				continue
			}
			results = append(results, SearchResult{
				ID:          FormatVerseID(book, chapter, v.Number),
				Book:        book,
				Chapter:     chapter,
				Verse:       v.Number,
				Text:        v.Text,
				MatchedTerm: trimmed,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Book != b.Book {
			return bookIndex(a.Book) < bookIndex(b.Book)
		}
		if a.Chapter != b.Chapter {
			return a.Chapter < b.Chapter
		}
		return a.Verse < b.Verse
	})

	return results, nil
}

// splitChapterKey undoes chapterKey: the chapter number sits after the
// last space, book names may themselves contain spaces.
func splitChapterKey(key string) (string, int, bool) {
	idx := strings.LastIndex(key, " ")
	if idx <= 0 {
		return "", 0, false
	}
	chapter, err := strconv.Atoi(key[idx+1:])
	if err != nil {
		return "", 0, false
	}
	return key[:idx], chapter, true
}

func bookIndex(book string) int {
	for i, b := range canon {
		if b.Name == book {
			return i
		}
	}
	return len(canon)
}
