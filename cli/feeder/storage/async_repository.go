package storage

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/daniil11ru/location-feeder/cli/feeder/types"
	log "github.com/sirupsen/logrus"
)

// AsyncRepository пишет в хранилища из пула воркеров, чтобы медленное хранилище не тормозило отправку
type AsyncRepository struct {
	repo   *Repository
	ch     chan *types.TelemetryRecord
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func NewAsyncRepository(repo *Repository, buffer, workers int) *AsyncRepository {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(context.Background())
	ar := &AsyncRepository{
		repo:   repo,
		ch:     make(chan *types.TelemetryRecord, buffer),
		ctx:    ctx,
		cancel: cancel,
	}
	for i := 0; i < workers; i++ {
		ar.wg.Add(1)
		go ar.worker()
	}
	return ar
}

func (a *AsyncRepository) worker() {
	defer a.wg.Done()
	for msg := range a.ch {
		if err := a.repo.Save(msg); err != nil {
			log.WithFields(log.Fields{"err": err, "user_id": msg.UserID}).Error("Ошибка сохранения записи в хранилище")
		}
	}
}

// Save ставит копию записи в очередь
func (a *AsyncRepository) Save(m *types.TelemetryRecord) error {
	rec := *m
	select {
	case <-a.ctx.Done():
		return fmt.Errorf("асинхронный репозиторий был закрыт")
	default:
	}

	select {
	case a.ch <- &rec:
		return nil
	case <-a.ctx.Done():
		return fmt.Errorf("асинхронный репозиторий был закрыт")
	}
}

// Close дожидается записи всех поставленных в очередь записей.
// Save и Close вызываются из одной горутины (цикла отправки).
func (a *AsyncRepository) Close() {
	a.once.Do(func() {
		a.cancel()
		close(a.ch)
		a.wg.Wait()
	})
}
