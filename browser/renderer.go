package browser

// Renderer is the rendering collaborator's contract. The engine never
// pushes trees; it notifies and lets the renderer pull via DocumentFor.
type Renderer interface {
	// Resize informs the renderer of a new viewport size in CSS pixels.
	Resize(width, height float64)
	// DocumentChanged signals that tab has a new document installed.
	DocumentChanged(tab TabID)
}

type nopRenderer struct{}

func (nopRenderer) Resize(width, height float64) {}
func (nopRenderer) DocumentChanged(tab TabID)    {}
