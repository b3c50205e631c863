package domain

import (
	"context"
	"errors"
	"time"

	"github.com/daniil11ru/location-feeder/cli/feeder/sender"
	"github.com/daniil11ru/location-feeder/cli/feeder/types"
	log "github.com/sirupsen/logrus"
)

var now = time.Now // For mocking time.Now() in tests

// Sender отправляет одну запись и сообщает, принял ли ее сервер
type Sender interface {
	Send(ctx context.Context, rec sender.Record) error
}

// Mirror дополнительные хранилища, в которые дублируется каждая отправленная запись
type Mirror interface {
	Save(*types.TelemetryRecord) error
}

func logSendError(err error, userID string) {
	var statusErr *sender.StatusError
	if errors.As(err, &statusErr) {
		log.WithFields(log.Fields{
			"user_id": userID,
			"code":    statusErr.Code,
			"body":    statusErr.Body,
		}).Error("Ошибка отправки")
		return
	}
	log.WithFields(log.Fields{"user_id": userID, "err": err}).Error("Ошибка соединения")
}

func mirror(m Mirror, rec *types.TelemetryRecord) {
	if m == nil {
		return
	}
	if err := m.Save(rec); err != nil {
		log.WithFields(log.Fields{"user_id": rec.UserID, "err": err}).Warn("Не удалось продублировать запись в хранилище")
	}
}

// sleep возвращает false, если ожидание прервано отменой контекста
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
