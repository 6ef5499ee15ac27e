package renderer

// section writes a titled block only when fill reports something to show.
// fill renders into a scratch renderer, so a skipped section leaves no
// heading behind.
func (r *mdRenderer) section(title string, fill func(b *mdRenderer) bool) {
	b := newRenderer()
	if !fill(b) {
		return
	}
	r.Printf("%s\n\n", title)
	r.WriteString(b.String())
	r.Printf("\n")
}
