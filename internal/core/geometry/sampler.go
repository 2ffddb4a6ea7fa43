package geometry

// Box is a live layout rectangle relative to the viewport
type Box struct {
	Top           float64
	Bottom        float64
	PaddingTop    float64
	PaddingBottom float64
}

// ContentTop is the top edge of the content box
func (b Box) ContentTop() float64 {
	return b.Top + b.PaddingTop
}

// ContentBottom is the bottom edge of the content box
func (b Box) ContentBottom() float64 {
	return b.Bottom - b.PaddingBottom
}

// ContentHeight is the height of the content box
func (b Box) ContentHeight() float64 {
	return b.ContentBottom() - b.ContentTop()
}

// SampleProgress derives the progress of a sticky element through its wrapper.
// A sticky element entirely above the wrapper reports 0, one entirely below
// reports 1. When the sticky element fills the wrapper there is no slack to
// scroll through and progress is 0.
func SampleProgress(sticky, wrapper Box) float64 {
	if sticky.ContentBottom() < wrapper.ContentTop() {
		return 0
	}
	if sticky.ContentTop() > wrapper.ContentBottom() {
		return 1
	}

	slack := wrapper.ContentHeight() - sticky.ContentHeight()
	if slack == 0 {
		return 0
	}
	return clamp01((sticky.ContentTop() - wrapper.ContentTop()) / slack)
}
