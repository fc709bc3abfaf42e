package service

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"lendshare-backend/internal/domain"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

func (s *emailService) SendLoanInquiredNotification(ctx context.Context, ownerEmail, tenantName, itemName string) error {
	body := fmt.Sprintf("Hello,\n\n%s would like to rent your item: %s.\n\nLog in to accept or deny the inquiry.\n\nBest regards,\nThe LendShare Team", tenantName, itemName)
	return s.send(ownerEmail, fmt.Sprintf("New rental inquiry for %s", itemName), body)
}

func (s *emailService) SendLoanStatusNotification(ctx context.Context, recipientEmail, itemName string, status domain.LoanStatus) error {
	body := fmt.Sprintf("Hello,\n\nThe loan for %s changed status to: %s.\n\nBest regards,\nThe LendShare Team", itemName, status)
	return s.send(recipientEmail, fmt.Sprintf("Loan update - %s", itemName), body)
}

func (s *emailService) SendProtocolReadyNotification(ctx context.Context, tenantEmail, itemName, protocolKind string) error {
	body := fmt.Sprintf("Hello,\n\nThe %s protocol for %s is ready for your confirmation.\n\nBest regards,\nThe LendShare Team", protocolKind, itemName)
	return s.send(tenantEmail, fmt.Sprintf("%s protocol ready - %s", protocolKind, itemName), body)
}

func (s *emailService) SendLoanOverdueReminder(ctx context.Context, tenantEmail, itemName string, dueDate time.Time) error {
	body := fmt.Sprintf("Hello,\n\nYour loan of %s was due on %s. Please arrange the return with the owner.\n\nBest regards,\nThe LendShare Team", itemName, dueDate.Format("2006-01-02"))
	return s.send(tenantEmail, fmt.Sprintf("Loan overdue - %s", itemName), body)
}
