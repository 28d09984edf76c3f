// Package background runs the scheduled jobs that live outside the request
// path, currently just the notification outbox dispatcher.
package background

import (
	"context"
	"log"
	"time"

	"leadmart/internal/services"

	"github.com/go-co-op/gocron/v2"
)

const dispatchInterval = 1 * time.Minute

// JobScheduler owns the gocron scheduler and the jobs registered on it.
type JobScheduler struct {
	scheduler       gocron.Scheduler
	notificationSvc services.NotificationService
}

func NewJobScheduler(notificationSvc services.NotificationService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:       scheduler,
		notificationSvc: notificationSvc,
	}

	if err := js.registerJobs(); err != nil {
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) registerJobs() error {
	// Singleton mode: a slow SMTP round trip must not overlap the next tick.
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(dispatchInterval),
		gocron.NewTask(js.dispatchNotifications),
		gocron.WithName("notification-dispatch"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

func (js *JobScheduler) dispatchNotifications() {
	if err := js.notificationSvc.DispatchPending(context.Background()); err != nil {
		log.Printf("WARN: notification dispatch run failed: %v", err)
	}
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}
