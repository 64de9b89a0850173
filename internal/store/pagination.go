package store

import "github.com/Priteshsurale/blogging-website/internal/models"

const DefaultPerPage = 5

// Page — одна страница постов и данные для навигации
type Page struct {
	Items   []models.Post
	Number  int
	PerPage int
	Total   int64
}

func (p *Page) Pages() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 0
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

func (p *Page) HasPrev() bool { return p.Number > 1 }
func (p *Page) HasNext() bool { return p.Number < p.Pages() }
func (p *Page) PrevNum() int  { return p.Number - 1 }
func (p *Page) NextNum() int  { return p.Number + 1 }

// IterPages возвращает номера страниц для навигации;
// 0 обозначает пропуск ("…") между краями и окном вокруг текущей страницы.
func (p *Page) IterPages() []int {
	const edge, around = 1, 2
	total := p.Pages()
	var nums []int
	last := 0
	for n := 1; n <= total; n++ {
		nearEdge := n <= edge || n > total-edge
		nearCurrent := n >= p.Number-around && n <= p.Number+around
		if !nearEdge && !nearCurrent {
			continue
		}
		if last != 0 && n != last+1 {
			nums = append(nums, 0)
		}
		nums = append(nums, n)
		last = n
	}
	return nums
}

func normalize(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return page, perPage
}
