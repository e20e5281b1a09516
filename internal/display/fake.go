package display

// FakeBacklight records Set calls for test assertions.
type FakeBacklight struct {
	States []bool
	Err    error // returned by Set when non-nil
}

func NewFakeBacklight() *FakeBacklight { return &FakeBacklight{} }

func (b *FakeBacklight) Set(on bool) error {
	if b.Err != nil {
		return b.Err
	}
	b.States = append(b.States, on)
	return nil
}

// Last returns the most recent state, or false if Set was never called.
func (b *FakeBacklight) Last() bool {
	if len(b.States) == 0 {
		return false
	}
	return b.States[len(b.States)-1]
}

// FakeTouchSource lets tests inject taps.
type FakeTouchSource struct {
	ch chan TouchEvent
}

func NewFakeTouchSource() *FakeTouchSource {
	return &FakeTouchSource{ch: make(chan TouchEvent, 16)}
}

// Tap queues a touch event.
func (s *FakeTouchSource) Tap(evt TouchEvent) {
	s.ch <- evt
}

func (s *FakeTouchSource) Events() <-chan TouchEvent { return s.ch }

func (s *FakeTouchSource) Close() error {
	close(s.ch)
	return nil
}
