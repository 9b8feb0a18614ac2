package sheet

import (
	"fmt"
	"strings"
)

// Paper is a named page size, in millimetres, portrait orientation.
type Paper struct {
	Name          string
	Width, Height float64
}

// Default paper sizes.
var (
	A3     = Paper{Name: "A3", Width: 297, Height: 420}
	A4     = Paper{Name: "A4", Width: 210, Height: 297}
	A5     = Paper{Name: "A5", Width: 148, Height: 210}
	Letter = Paper{Name: "Letter", Width: 215.9, Height: 279.4} // 8.5" x 11"
	Legal  = Paper{Name: "Legal", Width: 215.9, Height: 355.6}  // 8.5" x 14"
)

var papers = [...]Paper{A3, A4, A5, Letter, Legal}

// LookupPaper returns the paper with the given name, ignoring case.
func LookupPaper(name string) (Paper, error) {
	for _, p := range papers {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Paper{}, fmt.Errorf("unknown paper size %q", name)
}

// Landscape returns the paper rotated by a quarter turn.
func (p Paper) Landscape() Paper {
	p.Width, p.Height = p.Height, p.Width
	return p
}
