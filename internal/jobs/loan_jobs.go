package jobs

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"lendshare-backend/internal/domain"
	"lendshare-backend/internal/logger"
)

// SendOverdueLoanReminders emails every tenant whose loan is still ACTIVE past
// its agreed end date and drops an in-app notification alongside.
func (jr *JobRunner) SendOverdueLoanReminders() {
	jr.runWithRecovery("SendOverdueLoanReminders", func() {
		ctx := context.Background()

		loans, err := jr.store.ListActiveEndedBefore(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to list overdue loans", "error", err)
			return
		}

		sent := 0
		for _, loan := range loans {
			tenant, err := jr.store.UserRepository.GetByID(ctx, loan.TenantID)
			if err != nil {
				logger.Error("Failed to load tenant for overdue loan", "loan_id", loan.ID, "error", err)
				continue
			}
			item, err := jr.store.ItemRepository.GetByID(ctx, loan.ItemID)
			if err != nil {
				logger.Error("Failed to load item for overdue loan", "loan_id", loan.ID, "error", err)
				continue
			}

			if err := jr.services.Email.SendLoanOverdueReminder(ctx, tenant.Email, item.Name, loan.To); err != nil {
				logger.Error("Failed to send overdue reminder",
					"loan_id", loan.ID,
					"tenant_id", loan.TenantID,
					"error", err)
				continue
			}

			notification := &domain.Notification{
				UserID:  loan.TenantID,
				Title:   "Loan overdue",
				Message: fmt.Sprintf("Your loan of %q was due on %s. Please arrange the return.", item.Name, loan.To.Format("2006-01-02")),
				Attributes: map[string]string{
					"loan_id": strconv.Itoa(int(loan.ID)),
					"item_id": strconv.Itoa(int(loan.ItemID)),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, notification); err != nil {
				logger.Warn("Failed to record overdue notification", "loan_id", loan.ID, "error", err)
			}
			sent++
		}

		logger.Info("Sent overdue loan reminders", "count", sent, "overdue", len(loans))
	})
}
