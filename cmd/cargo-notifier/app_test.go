package main

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/silkway-cargo/silkway/internal/broker/messages"
	"github.com/stretchr/testify/require"
)

type scriptedConsumer struct {
	values [][]byte
}

func (c *scriptedConsumer) Consume(ctx context.Context, handler func(key, value []byte) error) error {
	for _, v := range c.values {
		if err := handler(nil, v); err != nil {
			return err
		}
	}
	<-ctx.Done()
	return ctx.Err()
}

type recordingCache struct {
	deleted []string
	err     error
}

func (c *recordingCache) Del(ctx context.Context, key string) error {
	c.deleted = append(c.deleted, key)
	return c.err
}

func TestRunNotifier_InvalidatesCache(t *testing.T) {
	ev, err := json.Marshal(messages.TrackUpdated{
		ImportID:    "8e6c1f54-0000-0000-0000-000000000001",
		TrackID:     7,
		TrackNumber: "LP00123456789CN",
		StatusID:    3,
		OccurredAt:  time.Now().UTC(),
	})
	require.NoError(t, err)

	consumer := &scriptedConsumer{values: [][]byte{ev}}
	c := &recordingCache{}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = runNotifier(ctx, consumer, c)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, []string{"track:LP00123456789CN:current"}, c.deleted)
}

func TestRunNotifier_SkipsMalformedEvent(t *testing.T) {
	consumer := &scriptedConsumer{values: [][]byte{[]byte("not json")}}
	c := &recordingCache{}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := runNotifier(ctx, consumer, c)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Empty(t, c.deleted)
}
