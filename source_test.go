package libgesturego

import (
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

type countingListener struct {
	samples []Sample
	onFirst func()
}

func (l *countingListener) OnSample(s Sample) {
	l.samples = append(l.samples, s)
	if len(l.samples) == 1 && l.onFirst != nil {
		l.onFirst()
	}
}

func TestSensorHubChannels(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	hub := NewSensorHub(ChannelAcceleration, ChannelLight)

	_, ok := hub.Channel(ChannelAcceleration)
	assert.True(ok)
	_, ok = hub.Channel(ChannelProximity)
	assert.False(ok)

	l := &countingListener{}
	err := hub.Subscribe(ChannelHandle{Kind: ChannelProximity}, l)
	assert.True(errors.Is(err, ErrUnknownChannel))

	// A handle for a known kind but the wrong ID is rejected too.
	err = hub.Subscribe(ChannelHandle{Kind: ChannelLight, ID: 7}, l)
	assert.True(errors.Is(err, ErrUnknownChannel))
	assert.Equal(0, hub.SubscriberCount(ChannelLight))
}

func TestSensorHubSubscribe(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	hub := NewSensorHub(AllChannelKinds...)
	ch, ok := hub.Channel(ChannelLight)
	require.True(ok)

	a, b := &countingListener{}, &countingListener{}
	require.Nil(hub.Subscribe(ch, a))
	require.Nil(hub.Subscribe(ch, a))
	require.Nil(hub.Subscribe(ch, b))
	assert.Equal(2, hub.SubscriberCount(ChannelLight))

	hub.Publish(Sample{Kind: ChannelLight, Values: [3]float64{4}})
	hub.Publish(Sample{Kind: ChannelProximity, Values: [3]float64{1}})
	assert.Len(a.samples, 1)
	assert.Len(b.samples, 1)

	hub.Unsubscribe(ch, a)
	hub.Unsubscribe(ch, a)
	assert.Equal(1, hub.SubscriberCount(ChannelLight))

	hub.Publish(Sample{Kind: ChannelLight, Values: [3]float64{5}})
	assert.Len(a.samples, 1)
	assert.Len(b.samples, 2)

	hub.Unsubscribe(ch, b)
	assert.Equal(0, hub.SubscriberCount(ChannelLight))
	assert.Equal(0, hub.SubscriberCount(ChannelKind(42)))
}

func TestSensorHubUnsubscribeWhilePublishing(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	hub := NewSensorHub(ChannelProximity)
	ch, _ := hub.Channel(ChannelProximity)

	second := &countingListener{}
	first := &countingListener{}
	first.onFirst = func() { hub.Unsubscribe(ch, second) }

	require.Nil(hub.Subscribe(ch, first))
	require.Nil(hub.Subscribe(ch, second))

	// The snapshot taken before delivery still reaches second once.
	hub.Publish(Sample{Kind: ChannelProximity})
	hub.Publish(Sample{Kind: ChannelProximity})

	assert.Len(first.samples, 2)
	assert.Len(second.samples, 1)
}

func TestEventStrings(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal("single_tap@5", newEvent(EventSingleTap, 5).String())
	assert.Equal("swipe(right)@7",
		GestureEvent{Kind: EventSwipe, Direction: DirectionRight, Timestamp: 7}.String())
	assert.Equal("scale(outward=true)@9",
		GestureEvent{Kind: EventScale, Outward: true, Timestamp: 9}.String())
	assert.Equal("EventKind(99)", EventKind(99).String())
	assert.Equal("accel", ChannelAcceleration.String())
	assert.Equal("ChannelKind(9)", ChannelKind(9).String())

	data, err := json.Marshal(GestureEvent{Kind: EventWave, Timestamp: 3})
	assert.Nil(err)
	assert.JSONEq(`{"kind":"wave","ts":3}`, string(data))
}

func TestParseChannelKindUnknown(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	_, err := ParseChannelKind("gyro")
	assert.True(errors.Is(err, ErrUnknownChannel))
	_, err = ParseChannelKind("")
	assert.True(errors.Is(err, ErrUnknownChannel))
}
