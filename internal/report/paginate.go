package report

// DefaultBudget is the printable page height in px (A4 less margins, header
// and footer)
const DefaultBudget = 760

// Page is one sheet of the report
type Page struct {
	Number int
	Blocks []Block
	Height float64
}

// Paginator appends blocks to a growing sequence of pages. A block that does
// not fit moves to a new page unless the current page is empty, so a single
// oversized block sits alone on its page and is never split.
type Paginator struct {
	budget   float64
	measurer Measurer
	pages    []*Page
	current  *Page
}

// NewPaginator creates a paginator; a non-positive budget uses DefaultBudget
func NewPaginator(m Measurer, budget float64) *Paginator {
	if budget <= 0 {
		budget = DefaultBudget
	}
	if m == nil {
		m = EstimateMeasurer{}
	}
	return &Paginator{budget: budget, measurer: m}
}

func (p *Paginator) newPage() {
	p.current = &Page{Number: len(p.pages) + 1}
	p.pages = append(p.pages, p.current)
}

// Add places a block on the current page or a fresh one
func (p *Paginator) Add(b Block) {
	if p.current == nil {
		p.newPage()
	}
	h := p.measurer.Height(b)
	if p.current.Height+h > p.budget && len(p.current.Blocks) > 0 {
		p.newPage()
	}
	p.current.Blocks = append(p.current.Blocks, b)
	p.current.Height += h
}

// AddAll adds blocks in order
func (p *Paginator) AddAll(blocks []Block) {
	for _, b := range blocks {
		p.Add(b)
	}
}

// Pages returns the pages laid out so far
func (p *Paginator) Pages() []Page {
	out := make([]Page, len(p.pages))
	for i, pg := range p.pages {
		out[i] = *pg
	}
	return out
}

// Paginate lays out blocks on pages of the given budget
func Paginate(blocks []Block, m Measurer, budget float64) []Page {
	p := NewPaginator(m, budget)
	p.AddAll(blocks)
	return p.Pages()
}
