package render

// FakeRenderer records frames for test assertions.
type FakeRenderer struct {
	Frames []Frame
	Err    error // returned by Render when non-nil
}

func NewFakeRenderer() *FakeRenderer { return &FakeRenderer{} }

func (r *FakeRenderer) Render(f Frame) error {
	if r.Err != nil {
		return r.Err
	}
	r.Frames = append(r.Frames, f)
	return nil
}

// Last returns the most recently rendered frame, or a zero Frame.
func (r *FakeRenderer) Last() Frame {
	if len(r.Frames) == 0 {
		return Frame{}
	}
	return r.Frames[len(r.Frames)-1]
}
