package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const bufferCapacity = 256

// RealPublisher publishes to an actual MQTT broker. Messages sent while the
// connection is down are held in a ring buffer and replayed on reconnect.
type RealPublisher struct {
	client paho.Client
	prefix string

	mu     sync.Mutex
	buffer *ringBuffer
}

// NewRealPublisher creates a publisher connected to the given broker.
func NewRealPublisher(broker, topicPrefix string) (*RealPublisher, error) {
	if topicPrefix == "" {
		topicPrefix = DefaultTopicPrefix
	}
	p := &RealPublisher{
		prefix: topicPrefix,
		buffer: newRingBuffer(bufferCapacity),
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("priceboard").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(paho.Client) { p.replayBuffered() })

	p.client = paho.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	return p, nil
}

// PublishTier sends a tier-change event on <prefix>/tier.
func (p *RealPublisher) PublishTier(event TierEvent) error {
	payload, err := FormatTierPayload(event)
	if err != nil {
		return fmt.Errorf("format tier payload: %w", err)
	}
	// Retained so a freshly subscribed automation sees the current tier.
	return p.publish(p.prefix+"/tier", payload, 0, true)
}

// PublishBacklight sends a backlight transition on <prefix>/backlight.
func (p *RealPublisher) PublishBacklight(event BacklightEvent) error {
	payload, err := FormatBacklightPayload(event)
	if err != nil {
		return fmt.Errorf("format backlight payload: %w", err)
	}
	return p.publish(p.prefix+"/backlight", payload, 0, true)
}

// PublishSystem sends a lifecycle event on <prefix>/system with QoS 1 so
// shutdown notices survive a flaky link.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	return p.publish(p.prefix+"/system", payload, 1, false)
}

func (p *RealPublisher) publish(topic string, payload []byte, qos byte, retained bool) error {
	if !p.client.IsConnected() {
		p.mu.Lock()
		p.buffer.push(bufferedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		p.mu.Unlock()
		return nil
	}

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout on %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (p *RealPublisher) replayBuffered() {
	p.mu.Lock()
	msgs := p.buffer.drainAll()
	p.mu.Unlock()

	if len(msgs) == 0 {
		return
	}
	log.Printf("[INFO] mqtt: replaying %d buffered messages", len(msgs))
	for _, m := range msgs {
		token := p.client.Publish(m.topic, m.qos, m.retained, m.payload)
		if !token.WaitTimeout(5 * time.Second) {
			log.Printf("[WARN] mqtt: replay timeout on %s", m.topic)
			continue
		}
		if err := token.Error(); err != nil {
			log.Printf("[WARN] mqtt: replay %s: %v", m.topic, err)
		}
	}
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // milliseconds
	return nil
}
