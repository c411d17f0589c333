// services/reminder_service.go
package services

import (
	"context"
	"strings"
	"time"

	"github.com/levomgrup/sales-api/models"
	"github.com/levomgrup/sales-api/repository"
	"github.com/levomgrup/sales-api/utils"
	"github.com/sirupsen/logrus"
)

const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

// Sender delivers one reminder message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, channel, to, body string) (string, error)
}

type ReminderResult struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// ReminderService tells customers about the visit planned for tomorrow.
type ReminderService struct {
	visits    repository.VisitRepository
	customers repository.CustomerRepository
	logs      repository.ReminderLogRepository
	sender    Sender
	template  string
	log       *logrus.Logger
	now       func() time.Time
}

func NewReminderService(store repository.Store, sender Sender, template string, log *logrus.Logger, now func() time.Time) *ReminderService {
	if now == nil {
		now = time.Now
	}
	return &ReminderService{
		visits:    store.Visits(),
		customers: store.Customers(),
		logs:      store.ReminderLogs(),
		sender:    sender,
		template:  template,
		log:       log,
		now:       now,
	}
}

// SendDailyReminders messages the customer of every scheduled visit on the
// next calendar day. Visits already reminded successfully are skipped.
func (s *ReminderService) SendDailyReminders(ctx context.Context) (ReminderResult, error) {
	var result ReminderResult
	tomorrow := utils.BeginningOfDay(s.now()).AddDate(0, 0, 1)
	s.log.WithField("day", tomorrow.Format("2006-01-02")).Info("Starting daily reminder processing")

	visits, err := s.visits.ListScheduledBetween(ctx, tomorrow, tomorrow.AddDate(0, 0, 1))
	if err != nil {
		return result, err
	}

	for _, visit := range visits {
		entry := s.log.WithFields(logrus.Fields{"visit_id": visit.ID, "customer_id": visit.CustomerID})

		sent, err := s.logs.HasSent(ctx, visit.ID)
		if err != nil {
			entry.WithError(err).Error("Failed to check reminder log")
			result.Failed++
			continue
		}
		if sent {
			result.Skipped++
			continue
		}

		customer, err := s.customers.GetActive(ctx, visit.CustomerID)
		if err != nil {
			entry.WithError(err).Warn("Skipping reminder, customer unavailable")
			result.Skipped++
			continue
		}

		if s.remind(ctx, visit, customer) {
			result.Sent++
		} else {
			result.Failed++
		}
	}

	s.log.WithFields(logrus.Fields{
		"sent":    result.Sent,
		"failed":  result.Failed,
		"skipped": result.Skipped,
	}).Info("Daily reminder processing completed")
	return result, nil
}

func (s *ReminderService) remind(ctx context.Context, visit models.Visit, customer *models.Customer) bool {
	message := RenderReminder(s.template, customer, visit)
	channel, to := ReminderChannel(customer.Phone)

	reminderLog := models.VisitReminderLog{
		VisitID:    visit.ID,
		CustomerID: customer.ID,
		Message:    message,
		Status:     models.ReminderSent,
		Channel:    channel,
		SentAt:     s.now(),
	}

	providerID, err := s.sender.Send(ctx, channel, to, message)
	if err != nil {
		s.log.WithError(err).WithField("phone", customer.Phone).Error("Failed to send reminder")
		reminderLog.Status = models.ReminderFailed
		reminderLog.ErrorMessage = err.Error()
	} else {
		reminderLog.ProviderID = providerID
		s.log.WithFields(logrus.Fields{"phone": customer.Phone, "sid": providerID}).Info("Reminder sent")
	}

	if err := s.logs.Create(ctx, &reminderLog); err != nil {
		s.log.WithError(err).WithField("visit_id", visit.ID).Error("Failed to log reminder")
	}
	return reminderLog.Status == models.ReminderSent
}

// RenderReminder fills the [StoreName] and [VisitDate] placeholders.
func RenderReminder(template string, customer *models.Customer, visit models.Visit) string {
	return strings.NewReplacer(
		"[StoreName]", customer.StoreName,
		"[VisitDate]", visit.VisitDate.Local().Format("02.01.2006"),
	).Replace(template)
}

// ReminderChannel picks WhatsApp for numbers in E.164 form and SMS otherwise.
// The returned address carries only digits and the leading +.
func ReminderChannel(phone string) (channel, to string) {
	phone = utils.NormalizePhone(phone)
	if strings.HasPrefix(phone, "+") {
		return ChannelWhatsApp, "whatsapp:" + phone
	}
	return ChannelSMS, phone
}
