package bible

// BookInfo describes one book of the fixed 66-book canon.
type BookInfo struct {
	Name     string `json:"name"`
	Chapters int    `json:"chapters"`
}

// canon is the fixed book/chapter table the reader navigates. Verse counts
// come from the content asset, not from here.
var canon = []BookInfo{
	{Name: "Genesis", Chapters: 50},
	{Name: "Exodus", Chapters: 40},
	{Name: "Leviticus", Chapters: 27},
	{Name: "Numbers", Chapters: 36},
	{Name: "Deuteronomy", Chapters: 34},
	{Name: "Joshua", Chapters: 24},
	{Name: "Judges", Chapters: 21},
	{Name: "Ruth", Chapters: 4},
	{Name: "I Samuel", Chapters: 31},
	{Name: "II Samuel", Chapters: 24},
	{Name: "I Kings", Chapters: 22},
	{Name: "II Kings", Chapters: 25},
	{Name: "I Chronicles", Chapters: 29},
	{Name: "II Chronicles", Chapters: 36},
	{Name: "Ezra", Chapters: 10},
	{Name: "Nehemiah", Chapters: 13},
	{Name: "Esther", Chapters: 10},
	{Name: "Job", Chapters: 42},
	{Name: "Psalms", Chapters: 150},
	{Name: "Proverbs", Chapters: 31},
	{Name: "Ecclesiastes", Chapters: 12},
	{Name: "Song of Solomon", Chapters: 8},
	{Name: "Isaiah", Chapters: 66},
	{Name: "Jeremiah", Chapters: 52},
	{Name: "Lamentations", Chapters: 5},
	{Name: "Ezekiel", Chapters: 48},
	{Name: "Daniel", Chapters: 12},
	{Name: "Hosea", Chapters: 14},
	{Name: "Joel", Chapters: 3},
	{Name: "Amos", Chapters: 9},
	{Name: "Obadiah", Chapters: 1},
	{Name: "Jonah", Chapters: 4},
	{Name: "Micah", Chapters: 7},
	{Name: "Nahum", Chapters: 3},
	{Name: "Habakkuk", Chapters: 3},
	{Name: "Zephaniah", Chapters: 3},
	{Name: "Haggai", Chapters: 2},
	{Name: "Zechariah", Chapters: 14},
	{Name: "Malachi", Chapters: 4},
	{Name: "Matthew", Chapters: 28},
	{Name: "Mark", Chapters: 16},
	{Name: "Luke", Chapters: 24},
	{Name: "John", Chapters: 21},
	{Name: "Acts", Chapters: 28},
	{Name: "Romans", Chapters: 16},
	{Name: "I Corinthians", Chapters: 16},
	{Name: "II Corinthians", Chapters: 13},
	{Name: "Galatians", Chapters: 6},
	{Name: "Ephesians", Chapters: 6},
	{Name: "Philippians", Chapters: 4},
	{Name: "Colossians", Chapters: 4},
	{Name: "I Thessalonians", Chapters: 5},
	{Name: "II Thessalonians", Chapters: 3},
	{Name: "I Timothy", Chapters: 6},
	{Name: "II Timothy", Chapters: 4},
	{Name: "Titus", Chapters: 3},
	{Name: "Philemon", Chapters: 1},
	{Name: "Hebrews", Chapters: 13},
	{Name: "James", Chapters: 5},
	{Name: "I Peter", Chapters: 5},
	{Name: "II Peter", Chapters: 3},
	{Name: "I John", Chapters: 5},
	{Name: "II John", Chapters: 1},
	{Name: "III John", Chapters: 1},
	{Name: "Jude", Chapters: 1},
	{Name: "Revelation", Chapters: 22},
}

// Books returns the canon in reading order.
func Books() []BookInfo {
	out := make([]BookInfo, len(canon))
	copy(out, canon)
	return out
}

// ChapterCount returns the number of chapters in the named book, or 0 if
// the book is not part of the canon.
func ChapterCount(book string) int {
	for _, b := range canon {
		if b.Name == book {
			return b.Chapters
		}
	}
	return 0
}

// IsCanonBook reports whether the name is one of the 66 books.
func IsCanonBook(book string) bool {
	return ChapterCount(book) > 0
}
