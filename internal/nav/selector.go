package nav

// ChaptersPerPage is the chapter picker page size.
const ChaptersPerPage = 20

// Selector is the paginated chapter picker.
type Selector struct {
	chapters []int
	index    map[int]int
	page     int
	current  int
}

// NewSelector lists the given chapters, in order.
func NewSelector(chapters []int) *Selector {
	s := &Selector{
		chapters: append([]int(nil), chapters...),
		index:    make(map[int]int, len(chapters)),
		page:     1,
	}
	for i, ch := range s.chapters {
		s.index[ch] = i
	}
	return s
}

// RangeSelector lists chapters 1..maxChapter.
func RangeSelector(maxChapter int) *Selector {
	if maxChapter < 1 {
		maxChapter = 1
	}
	chapters := make([]int, maxChapter)
	for i := range chapters {
		chapters[i] = i + 1
	}
	return NewSelector(chapters)
}

func (s *Selector) pager() Pager {
	return Pager{Total: len(s.chapters), PerPage: ChaptersPerPage}
}

// Open marks current as the selected chapter and jumps to its page.
func (s *Selector) Open(current int) {
	s.current = current
	if i, ok := s.index[current]; ok {
		s.page = s.pager().PageOf(i)
		return
	}
	s.page = 1
}

// Page returns the current 1-based page.
func (s *Selector) Page() int {
	return s.page
}

// Pages returns the number of pages.
func (s *Selector) Pages() int {
	return s.pager().Pages()
}

// Label renders the page indicator.
func (s *Selector) Label() string {
	return s.pager().Label(s.page)
}

// Current returns the chapter the picker was opened with.
func (s *Selector) Current() int {
	return s.current
}

// Items returns the chapters on the current page.
func (s *Selector) Items() []int {
	return Slice(s.chapters, ChaptersPerPage, s.page)
}

// Chapters returns every listed chapter.
func (s *Selector) Chapters() []int {
	return s.chapters
}

// NextPage moves one page forward, stopping at the last page.
func (s *Selector) NextPage() {
	s.page = s.pager().Clamp(s.page + 1)
}

// PrevPage moves one page back, stopping at the first page.
func (s *Selector) PrevPage() {
	s.page = s.pager().Clamp(s.page - 1)
}

// SwipePage moves by delta pages, wrapping around.
func (s *Selector) SwipePage(delta int) {
	s.page = s.pager().Wrap(s.page, delta)
}

// Contains reports whether chapter is listed.
func (s *Selector) Contains(chapter int) bool {
	_, ok := s.index[chapter]
	return ok
}

// Select returns chapter if it is listed.
func (s *Selector) Select(chapter int) (int, bool) {
	if !s.Contains(chapter) {
		return 0, false
	}
	s.current = chapter
	return chapter, true
}

// SelectItem selects the i-th chapter on the current page.
func (s *Selector) SelectItem(i int) (int, bool) {
	items := s.Items()
	if i < 0 || i >= len(items) {
		return 0, false
	}
	return s.Select(items[i])
}
