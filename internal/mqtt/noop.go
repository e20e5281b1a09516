package mqtt

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (n *NoopPublisher) PublishTier(_ TierEvent) error           { return nil }
func (n *NoopPublisher) PublishBacklight(_ BacklightEvent) error { return nil }
func (n *NoopPublisher) PublishSystem(_ SystemEvent) error       { return nil }
func (n *NoopPublisher) Close() error                            { return nil }
