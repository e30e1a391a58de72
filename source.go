package libgesturego

import (
	"fmt"
	"sync"
)

// ChannelHandle identifies one available channel on a SensorSource.
type ChannelHandle struct {
	Kind ChannelKind
	ID   int
}

// SampleListener receives samples from a SensorSource.
type SampleListener interface {
	OnSample(s Sample)
}

// SensorSource is the platform side of sensor delivery: it knows which
// channels exist and calls subscribed listeners with their samples. A source
// must not deliver samples from inside Subscribe or Unsubscribe.
type SensorSource interface {
	Channel(kind ChannelKind) (ChannelHandle, bool)
	Subscribe(ch ChannelHandle, listener SampleListener) error
	Unsubscribe(ch ChannelHandle, listener SampleListener)
}

// SensorHub is an in-process SensorSource. Samples handed to Publish are
// delivered synchronously to every listener subscribed to that channel.
type SensorHub struct {
	mu          sync.Mutex
	channels    map[ChannelKind]ChannelHandle
	subscribers map[ChannelHandle][]SampleListener
}

// NewSensorHub creates a hub where only the given channel kinds are available.
func NewSensorHub(kinds ...ChannelKind) *SensorHub {
	hub := &SensorHub{
		channels:    make(map[ChannelKind]ChannelHandle),
		subscribers: make(map[ChannelHandle][]SampleListener),
	}
	for i, kind := range kinds {
		hub.channels[kind] = ChannelHandle{Kind: kind, ID: i}
	}
	return hub
}

func (hub *SensorHub) Channel(kind ChannelKind) (ChannelHandle, bool) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	ch, ok := hub.channels[kind]
	return ch, ok
}

func (hub *SensorHub) Subscribe(ch ChannelHandle, listener SampleListener) error {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if known, ok := hub.channels[ch.Kind]; !ok || known != ch {
		return fmt.Errorf("subscribe %v: %w", ch.Kind, ErrUnknownChannel)
	}
	for _, l := range hub.subscribers[ch] {
		if l == listener {
			return nil
		}
	}
	hub.subscribers[ch] = append(hub.subscribers[ch], listener)
	return nil
}

func (hub *SensorHub) Unsubscribe(ch ChannelHandle, listener SampleListener) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	subs := hub.subscribers[ch]
	for i, l := range subs {
		if l == listener {
			hub.subscribers[ch] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(hub.subscribers[ch]) == 0 {
		delete(hub.subscribers, ch)
	}
}

// Publish delivers s to the listeners subscribed to its channel. Listeners
// may subscribe or unsubscribe while being called.
func (hub *SensorHub) Publish(s Sample) {
	hub.mu.Lock()
	ch, ok := hub.channels[s.Kind]
	var subs []SampleListener
	if ok {
		subs = append(subs, hub.subscribers[ch]...)
	}
	hub.mu.Unlock()

	for _, l := range subs {
		l.OnSample(s)
	}
}

// SubscriberCount returns the number of listeners on the channel of the given
// kind.
func (hub *SensorHub) SubscriberCount(kind ChannelKind) int {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	ch, ok := hub.channels[kind]
	if !ok {
		return 0
	}
	return len(hub.subscribers[ch])
}
