// Package jobs runs the periodic background work of the service.
package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"retail-order-service/internal/services"
)

// AssignmentJob periodically hands unassigned orders to operators with spare
// capacity. Orders that find no operator simply wait for the next run.
type AssignmentJob struct {
	operatorService *services.OperatorService
	schedule        string
	cron            *cron.Cron
	logger          *logrus.Entry
}

func NewAssignmentJob(operatorService *services.OperatorService, schedule string) *AssignmentJob {
	return &AssignmentJob{
		operatorService: operatorService,
		schedule:        schedule,
		cron:            cron.New(),
		logger:          logrus.WithField("component", "assignment_job"),
	}
}

func (j *AssignmentJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return fmt.Errorf("failed to schedule assignment job: %w", err)
	}

	j.cron.Start()
	j.logger.WithField("schedule", j.schedule).Info("Assignment job started")
	return nil
}

func (j *AssignmentJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logger.Info("Assignment job stopped")
}

func (j *AssignmentJob) run() {
	assigned, err := j.operatorService.DispatchAvailableOrders(context.Background())
	if err != nil {
		j.logger.WithError(err).Error("Failed to dispatch available orders")
		return
	}
	if assigned > 0 {
		j.logger.WithField("assigned", assigned).Info("Dispatched available orders")
	}
}
