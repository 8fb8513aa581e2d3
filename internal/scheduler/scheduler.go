package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/nataliaSk777/tochka-opory/internal/delivery"
	"github.com/nataliaSk777/tochka-opory/internal/models"
)

// Config — локальные времена запусков в формате "HH:MM".
type Config struct {
	Timezone  string
	MorningAt string
	EveningAt string
	BonusAt   string
}

// Start registers the three daily slot jobs and starts the scheduler.
// Движок сам изолирует ошибки отдельных получателей; здесь фиксируем
// только отказ всего прогона.
func Start(ctx context.Context, engine *delivery.Engine, cfg Config, logger *slog.Logger) (gocron.Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", cfg.Timezone, err)
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, err
	}

	log := logger.With("component", "scheduler")

	jobs := []struct {
		slot models.Slot
		at   string
	}{
		{models.SlotMorning, cfg.MorningAt},
		{models.SlotEvening, cfg.EveningAt},
		{models.SlotBonus, cfg.BonusAt},
	}

	for _, j := range jobs {
		hour, minute, err := parseHM(j.at)
		if err != nil {
			return nil, fmt.Errorf("slot %s: %w", j.slot, err)
		}

		slot := j.slot
		_, err = s.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(hour, minute, 0))),
			gocron.NewTask(func() {
				log.Info("slot run started", "slot", slot)
				if _, err := engine.RunSlot(ctx, slot); err != nil {
					log.Error("slot run aborted", "slot", slot, "error", err)
				}
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("register %s job: %w", slot, err)
		}
	}

	s.Start()
	log.Info("scheduler started", "tz", cfg.Timezone,
		"morning", cfg.MorningAt, "evening", cfg.EveningAt, "bonus", cfg.BonusAt)
	return s, nil
}

func parseHM(v string) (uint, uint, error) {
	parts := strings.SplitN(strings.TrimSpace(v), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("время %q не в формате HH:MM", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("время %q не в формате HH:MM", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("время %q не в формате HH:MM", v)
	}
	return uint(h), uint(m), nil
}
