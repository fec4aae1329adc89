package app

import (
	"fmt"

	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app/config"
	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app/models"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Transactional email is fire-and-forget: a failed send is logged, never
// surfaced to the client and never retried by us.

func sendInquiryNotification(in models.ContactInquiry) {
	cfg, err := config.LoadConfig()
	if err != nil || cfg.Email.SendGridKey == "" || cfg.Email.NotifyTo == "" {
		log.Printf("email not configured; skipping inquiry notification id=%s", in.ID)
		return
	}

	subject := fmt.Sprintf("New inquiry: %s (%s)", in.ServiceInterest, in.Email)
	body := fmt.Sprintf(
		"From: %s %s <%s>\nCompany: %s\nService: %s\n\n%s\n",
		in.FirstName, in.LastName, in.Email, in.Company, in.ServiceInterest, in.Message,
	)
	sendEmail(cfg, cfg.Email.NotifyTo, subject, body)
}

func sendPaymentConfirmation(consultation models.Consultation) {
	cfg, err := config.LoadConfig()
	if err != nil || cfg.Email.SendGridKey == "" {
		log.Printf("email not configured; skipping payment confirmation consultation=%s", consultation.ID)
		return
	}

	subject := "Your consultation is confirmed"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour %s purchase (%.1f hours) is confirmed. "+
			"We will reach out shortly to schedule your time.\n",
		consultation.Name, consultation.PackageType, consultation.PackageHours,
	)
	sendEmail(cfg, consultation.Email, subject, body)
}

func sendEmail(cfg *config.Config, to, subject, body string) {
	from := mail.NewEmail(cfg.Email.FromName, cfg.Email.FromAddress)
	msg := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), body, "")

	client := sendgrid.NewSendClient(cfg.Email.SendGridKey)
	resp, err := client.Send(msg)
	if err != nil {
		log.Printf("email send failed to=%s err=%v", to, err)
		return
	}
	if resp.StatusCode >= 400 {
		log.Printf("email send rejected to=%s status=%d", to, resp.StatusCode)
	}
}
