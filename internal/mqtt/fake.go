package mqtt

// FakePublisher records published events for test assertions.
type FakePublisher struct {
	TierEvents      []TierEvent
	BacklightEvents []BacklightEvent
	SystemEvents    []SystemEvent

	// PublishError, if set, is returned by every publish method.
	PublishError error

	// Closed tracks whether Close was called.
	Closed bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (f *FakePublisher) PublishTier(event TierEvent) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.TierEvents = append(f.TierEvents, event)
	return nil
}

func (f *FakePublisher) PublishBacklight(event BacklightEvent) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.BacklightEvents = append(f.BacklightEvents, event)
	return nil
}

func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.SystemEvents = append(f.SystemEvents, event)
	return nil
}

func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}
