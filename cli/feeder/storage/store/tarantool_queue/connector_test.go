package tarantool_queue

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/daniil11ru/location-feeder/cli/feeder/types"
	"github.com/tarantool/go-tarantool/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	opts, err := options(map[string]string{"user": "feeder", "password": "pass", "timeout": "3"})
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, opts.Timeout)
	assert.Equal(t, time.Second, opts.Reconnect)
	assert.Equal(t, uint(5), opts.MaxReconnects)
	assert.Equal(t, "feeder", opts.User)
	assert.Equal(t, "pass", opts.Pass)
}

func TestOptionsErrors(t *testing.T) {
	for _, key := range []string{"max_recons", "timeout", "reconnect"} {
		t.Run(key, func(t *testing.T) {
			_, err := options(map[string]string{key: "not-a-number"})
			assert.Error(t, err)
		})
	}
}

func TestConnector_InitNilConfig(t *testing.T) {
	assert.Error(t, (&Connector{}).Init(nil))
	assert.NoError(t, (&Connector{}).Close())
}

type fakeQueue struct {
	tasks []interface{}
	err   error
}

func (q *fakeQueue) Put(data interface{}) (*queue.Task, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, data)
	return &queue.Task{}, nil
}

func TestConnector_Save(t *testing.T) {
	rec := &types.TelemetryRecord{UserID: "car_3", ServiceType: "TAXI", Latitude: 1.2, Longitude: 103.7, Timestamp: 3000}

	for _, tt := range []struct {
		format string
		encode func() ([]byte, error)
	}{
		{format: types.FormatMsgpack, encode: rec.ToMsgpack},
		{format: types.FormatJSON, encode: rec.ToBytes},
	} {
		t.Run(tt.format, func(t *testing.T) {
			q := &fakeQueue{}
			c := &Connector{queue: q, format: tt.format}

			require.NoError(t, c.Save(rec))

			expected, err := tt.encode()
			require.NoError(t, err)
			require.Len(t, q.tasks, 1)
			assert.Equal(t, expected, q.tasks[0])
		})
	}

	q := &fakeQueue{}
	require.NoError(t, (&Connector{queue: q, format: types.FormatJSON}).Save(rec))
	var got types.TelemetryRecord
	require.NoError(t, json.Unmarshal(q.tasks[0].([]byte), &got))
	assert.Equal(t, *rec, got)
}

func TestConnector_SaveErrors(t *testing.T) {
	c := &Connector{queue: &fakeQueue{err: errors.New("queue is not found")}, format: types.FormatMsgpack}

	assert.Error(t, c.Save(nil))
	assert.Error(t, c.Save(&types.TelemetryRecord{UserID: "car_3"}))

	c = &Connector{queue: &fakeQueue{}, format: "xml"}
	assert.Error(t, c.Save(&types.TelemetryRecord{UserID: "car_3"}))
}
