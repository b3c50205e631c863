package storage

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/daniil11ru/location-feeder/cli/feeder/types"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore implements Store for testing.
type mockStore struct {
	mu      sync.Mutex
	saved   []string
	saveErr error
	closed  bool
}

func (ms *mockStore) Init(map[string]string) error { return nil }

func (ms *mockStore) Save(rec *types.TelemetryRecord) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.saveErr != nil {
		return ms.saveErr
	}
	ms.saved = append(ms.saved, rec.UserID)
	return nil
}

func (ms *mockStore) Close() error {
	ms.closed = true
	return nil
}

func (ms *mockStore) Saved() []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]string(nil), ms.saved...)
}

func TestRepository_SaveFanOut(t *testing.T) {
	first, second := &mockStore{}, &mockStore{}
	repo := NewRepository()
	repo.AddStore(first)
	repo.AddStore(second)

	require.NoError(t, repo.Save(&types.TelemetryRecord{UserID: "car_1"}))
	require.NoError(t, repo.Save(&types.TelemetryRecord{UserID: "car_2"}))

	assert.Equal(t, 2, repo.Len())
	assert.Equal(t, []string{"car_1", "car_2"}, first.Saved())
	assert.Equal(t, []string{"car_1", "car_2"}, second.Saved())

	require.NoError(t, repo.Close())
	assert.True(t, first.closed)
	assert.True(t, second.closed)
}

func TestRepository_SaveStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	failing, after := &mockStore{saveErr: boom}, &mockStore{}
	repo := NewRepository()
	repo.AddStore(failing)
	repo.AddStore(after)

	err := repo.Save(&types.TelemetryRecord{UserID: "car_1"})
	assert.True(t, errors.Is(err, boom))
	assert.Empty(t, after.Saved())
}

func TestRepository_LoadStorages(t *testing.T) {
	log.SetOutput(io.Discard)

	repo := NewRepository()
	assert.NoError(t, repo.LoadStorages(nil))
	assert.Equal(t, 0, repo.Len())

	err := repo.LoadStorages(map[string]map[string]string{"clickhouse": {}})
	assert.True(t, errors.Is(err, ErrUnknownStorage))

	// a known storage with broken settings fails on Init without a network call
	err = repo.LoadStorages(map[string]map[string]string{"kafka": {"timeout": "never"}})
	assert.Error(t, err)
	assert.Equal(t, 0, repo.Len())
}

func TestNewStore(t *testing.T) {
	for _, name := range []string{"kafka", "redis", "rabbitmq", "nats", "postgresql", "mysql", "tarantool_queue"} {
		t.Run(name, func(t *testing.T) {
			s, err := newStore(name)
			require.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}

func TestAsyncRepository(t *testing.T) {
	log.SetOutput(io.Discard)

	sink := &mockStore{}
	repo := NewRepository()
	repo.AddStore(sink)

	async := NewAsyncRepository(repo, 8, 2)
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, async.Save(&types.TelemetryRecord{UserID: id}))
	}
	async.Close()
	async.Close()

	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, sink.Saved())
	assert.Error(t, async.Save(&types.TelemetryRecord{UserID: "late"}))
}

func TestAsyncRepository_ErrorsAreLogged(t *testing.T) {
	log.SetOutput(io.Discard)

	repo := NewRepository()
	repo.AddStore(&mockStore{saveErr: errors.New("down")})

	async := NewAsyncRepository(repo, 1, 1)
	assert.NoError(t, async.Save(&types.TelemetryRecord{UserID: "a"}))
	async.Close()
}
