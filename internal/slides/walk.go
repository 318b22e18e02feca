package slides

// Visitor receives the parts of a deck during Walk. Nil fields are skipped.
type Visitor struct {
	Slide     func(s *Slide)
	TextFrame func(s *Slide, sh *Shape, tf *TextFrame)
	Table     func(s *Slide, sh *Shape, t *Table)
	Notes     func(s *Slide, tf *TextFrame)
}

// Walk visits slides in order. For each slide it visits shapes in document
// order, then the notes body if there is one.
func Walk(d *Deck, v Visitor) {
	for _, s := range d.Slides {
		if v.Slide != nil {
			v.Slide(s)
		}
		for _, sh := range s.Shapes {
			switch {
			case sh.HasTextFrame():
				if v.TextFrame != nil {
					v.TextFrame(s, sh, sh.TextFrame)
				}
			case sh.HasTable():
				if v.Table != nil {
					v.Table(s, sh, sh.Table)
				}
			}
		}
		if s.Notes != nil && v.Notes != nil {
			v.Notes(s, s.Notes)
		}
	}
}
