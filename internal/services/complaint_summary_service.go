package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Deepanshumelkani77/Grievance-system/internal/utils"
)

// LogOpenComplaintsSummary logs a status-count breakdown of every
// complaint still open. Runs daily from the cron in main.
func (s *ComplaintService) LogOpenComplaintsSummary(ctx context.Context) error {
	complaints, err := s.complaintRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	counts := map[string]int{}
	open := 0
	for _, c := range complaints {
		if c.Status.IsTerminal() {
			continue
		}
		counts[string(c.Status)]++
		open++
	}

	fields := logrus.Fields{"open_total": open}
	for status, n := range counts {
		fields[status] = n
	}
	utils.Logger.WithFields(fields).Info("Daily open complaints summary")
	return nil
}
