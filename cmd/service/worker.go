package main

import (
	"context"
	"time"

	"redacao_service/internal/repository"
	"redacao_service/internal/service"
	"redacao_service/pkg/kafka"
	"redacao_service/pkg/logger"
)

// ReminderWorker publishes a reminder event shortly before each live
// class starts. A class is reminded at most once per process lifetime.
type ReminderWorker struct {
	classRepo     *repository.LiveClassRepository
	kafkaProducer *kafka.Producer
	logger        *logger.Logger
	loc           *time.Location
	lead          time.Duration
	interval      time.Duration
	reminded      map[string]struct{}
}

func NewReminderWorker(
	classRepo *repository.LiveClassRepository,
	kafkaProducer *kafka.Producer,
	logger *logger.Logger,
	loc *time.Location,
	lead time.Duration,
) *ReminderWorker {
	return &ReminderWorker{
		classRepo:     classRepo,
		kafkaProducer: kafkaProducer,
		logger:        logger,
		loc:           loc,
		lead:          lead,
		interval:      time.Minute,
		reminded:      make(map[string]struct{}),
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Reminder worker stopped")
			return
		case <-ticker.C:
			w.processReminders(ctx)
		}
	}
}

func (w *ReminderWorker) processReminders(ctx context.Context) {
	now := time.Now().In(w.loc)

	classes, err := w.classRepo.ListAroundDate(ctx, now.Format("2006-01-02"))
	if err != nil {
		w.logger.Errorf("Failed to list upcoming classes: %v", err)
		return
	}

	for _, class := range classes {
		if !class.Active || !class.IsLiveFormat {
			continue
		}
		if _, ok := w.reminded[class.ID.String()]; ok {
			continue
		}

		start, _, err := class.Window(w.loc)
		if err != nil {
			w.logger.Errorf("Skipping class %s with invalid schedule: %v", class.ID, err)
			continue
		}

		until := start.Sub(now)
		if until <= 0 || until > w.lead {
			continue
		}

		message := map[string]interface{}{
			"class_id":           class.ID,
			"title":              class.Title,
			"starts_at":          start,
			"authorized_classes": class.AuthorizedClasses,
		}

		if err := w.kafkaProducer.Publish(ctx, service.TopicClassReminders, class.ID.String(), message); err != nil {
			w.logger.Errorf("Failed to send reminder for class %s: %v", class.ID, err)
			continue
		}

		w.reminded[class.ID.String()] = struct{}{}
		w.logger.Infof("Sent reminder for class %s", class.ID)
	}
}
