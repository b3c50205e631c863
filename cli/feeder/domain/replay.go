package domain

import (
	"context"
	"time"

	"github.com/daniil11ru/location-feeder/cli/feeder/source"
	log "github.com/sirupsen/logrus"
)

const DefaultReportEvery = 50

const acceptedMessage = "Запись принята"

type ReplayStats struct {
	// Sent число попыток отправки, включая неуспешные
	Sent     int
	Accepted int
	Failed   int
	// Skipped строки, которые не удалось разобрать; для них отправка не выполнялась
	Skipped int
	Reports int
	Elapsed time.Duration
}

// Replay отправляет строки трека по одной в порядке файла
type Replay struct {
	Sender      Sender
	Mirror      Mirror
	Delay       time.Duration
	ReportEvery int
	MapOptions  MapOptions
}

func rate(count int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(count) / elapsed.Seconds()
}

// Run проходит по строкам один раз. Ошибки отправки не прерывают цикл, только отмена контекста.
func (r *Replay) Run(ctx context.Context, rows []*source.Row) ReplayStats {
	var stats ReplayStats

	reportEvery := r.ReportEvery
	if reportEvery <= 0 {
		reportEvery = DefaultReportEvery
	}

	start := now()
	for i, row := range rows {
		if ctx.Err() != nil {
			log.Warn("Отправка прервана")
			break
		}

		rec, err := MapRow(row, r.MapOptions)
		if err != nil {
			stats.Skipped++
			log.WithFields(log.Fields{"row": i + 1, "err": err}).Warn("Строка пропущена")
			continue
		}

		if err := r.Sender.Send(ctx, &rec); err != nil {
			stats.Failed++
			logSendError(err, rec.UserID)
		} else {
			stats.Accepted++
			log.WithField("user_id", rec.UserID).Info(acceptedMessage)
		}
		mirror(r.Mirror, &rec)
		stats.Sent++

		if stats.Sent%reportEvery == 0 {
			stats.Reports++
			log.WithFields(log.Fields{
				"count": stats.Sent,
				"rate":  rate(stats.Sent, now().Sub(start)),
			}).Info("Прогресс отправки, req/sec")
		}

		if !sleep(ctx, r.Delay) {
			log.Warn("Отправка прервана")
			break
		}
	}
	stats.Elapsed = now().Sub(start)

	log.WithFields(log.Fields{
		"count":    stats.Sent,
		"accepted": stats.Accepted,
		"failed":   stats.Failed,
		"skipped":  stats.Skipped,
	}).Info("Отправка завершена")

	return stats
}
