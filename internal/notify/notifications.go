// Package notify carries the outward side effects of the escalation
// lifecycle: alerting supervisors about new help requests and relaying
// answers back to customers. Both are informational, with no delivery
// guarantee or retry.
package notify

import (
	"fmt"
	"html"
	"log"
	"strings"

	"helpdesk/internal/config"
	"helpdesk/internal/models"
)

// Notifier sends notifications for escalation lifecycle events.
type Notifier struct {
	service *Service
	cfg     *config.Config
}

// NewNotifier creates a new notifier.
func NewNotifier(cfg *config.Config) *Notifier {
	return &Notifier{
		service: NewService(cfg),
		cfg:     cfg,
	}
}

// NotifyEscalation alerts supervisors that a question needs a human answer.
// Always logged; additionally emailed when SMTP and alert addresses are
// configured.
func (n *Notifier) NotifyEscalation(request *models.HelpRequest) {
	log.Printf("SUPERVISOR NOTIFICATION: help needed for request %s from %s (%s): %q",
		request.ID, request.CustomerName, request.CustomerPhone, request.Question)

	emails := n.alertEmails()
	if len(emails) == 0 {
		return
	}

	subject, htmlBody, textBody := escalationMessage(request, n.cfg.BaseURL)
	n.service.SendAsync(emails, subject, htmlBody, textBody)
}

// FollowUpCustomer relays the supervisor's answer to the customer. Delivery
// is a simulated text message: the outbound message is logged. The caller is
// responsible for bumping the customer's last-contacted time.
func (n *Notifier) FollowUpCustomer(request *models.HelpRequest) error {
	if request.SupervisorAnswer == nil {
		return fmt.Errorf("cannot follow up on request %s: no supervisor answer", request.ID)
	}

	log.Printf("FOLLOW-UP to %s (%s): %q",
		request.CustomerName, request.CustomerPhone, *request.SupervisorAnswer)
	return nil
}

func (n *Notifier) alertEmails() []string {
	if n.cfg.SupervisorAlertEmails == "" {
		return nil
	}
	var emails []string
	for _, addr := range strings.Split(n.cfg.SupervisorAlertEmails, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			emails = append(emails, addr)
		}
	}
	return emails
}

// escalationMessage builds the supervisor alert email.
func escalationMessage(request *models.HelpRequest, baseURL string) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("Help needed: question from %s", request.CustomerName)

	link := fmt.Sprintf("%s/requests/%s", baseURL, request.ID)

	textBody = fmt.Sprintf(
		"A customer question needs your answer.\n\n"+
			"From: %s (%s)\n"+
			"Question: %s\n"+
			"Request: %s\n\n"+
			"Answer it before %s or the request expires.\n",
		request.CustomerName, request.CustomerPhone, request.Question, link,
		request.TimeoutAt.Format("15:04 MST"))

	htmlBody = fmt.Sprintf(
		"<p>A customer question needs your answer.</p>"+
			"<p><strong>From:</strong> %s (%s)<br>"+
			"<strong>Question:</strong> %s</p>"+
			"<p><a href=\"%s\">Open the request</a> before %s or it expires.</p>",
		html.EscapeString(request.CustomerName),
		html.EscapeString(request.CustomerPhone),
		html.EscapeString(request.Question),
		link,
		request.TimeoutAt.Format("15:04 MST"))

	return subject, htmlBody, textBody
}
