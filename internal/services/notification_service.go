package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/Deepanshumelkani77/Grievance-system/internal/config"
	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
	"github.com/Deepanshumelkani77/Grievance-system/internal/utils"
)

/*
Notifier is the outbound notification sink for complaint workflow events.
Delivery is best-effort: implementations must never return errors into
the workflow, and a failed send must not affect complaint state.
*/
type Notifier interface {
	ComplaintSubmitted(complaint *models.Complaint, submitter, assignee *models.User)
	ComplaintAccepted(complaint *models.Complaint, submitter *models.User)
	ComplaintRejected(complaint *models.Complaint, submitter *models.User)
	ComplaintResolved(complaint *models.Complaint, submitter *models.User)
	ComplaintEscalated(complaint *models.Complaint, submitter, escalator, director *models.User)
	ComplaintStatusUpdated(complaint *models.Complaint, submitter *models.User, previous models.ComplaintStatusType)
}

// SendGridNotifier delivers workflow events over email via SendGrid.
type SendGridNotifier struct {
	cfg    *config.Config
	client *sendgrid.Client
}

func NewSendGridNotifier(cfg *config.Config, client *sendgrid.Client) *SendGridNotifier {
	return &SendGridNotifier{cfg: cfg, client: client}
}

func (n *SendGridNotifier) ComplaintSubmitted(complaint *models.Complaint, submitter, assignee *models.User) {
	subject := fmt.Sprintf("%s - Complaint Received: %s", n.cfg.OrganizationName, complaint.Title)
	body := fmt.Sprintf(
		"Your complaint %q has been received and routed for review. You will be notified as it progresses.",
		complaint.Title,
	)
	n.dispatch(submitter, subject, body, string(complaint.Status), "Thank you for your patience.")

	if assignee != nil {
		aSubject := fmt.Sprintf("%s - New Complaint Assigned: %s", n.cfg.OrganizationName, complaint.Title)
		aBody := fmt.Sprintf(
			"A new %s complaint %q has been assigned to you for review.",
			complaint.Category, complaint.Title,
		)
		n.dispatch(assignee, aSubject, aBody, string(complaint.Status), "Please review it at your earliest convenience.")
	}
}

func (n *SendGridNotifier) ComplaintAccepted(complaint *models.Complaint, submitter *models.User) {
	n.statusUpdate(complaint, submitter, "Your complaint has been accepted and is being looked into.")
}

func (n *SendGridNotifier) ComplaintRejected(complaint *models.Complaint, submitter *models.User) {
	n.statusUpdate(complaint, submitter, "Your complaint has been reviewed and rejected.")
}

func (n *SendGridNotifier) ComplaintResolved(complaint *models.Complaint, submitter *models.User) {
	n.statusUpdate(complaint, submitter, "Your complaint has been resolved.")
}

func (n *SendGridNotifier) ComplaintEscalated(complaint *models.Complaint, submitter, escalator, director *models.User) {
	subject := fmt.Sprintf("%s - Complaint Escalated: %s", n.cfg.OrganizationName, complaint.Title)
	body := fmt.Sprintf(
		"Your complaint %q has been escalated to the director's office for final review.",
		complaint.Title,
	)
	n.dispatch(submitter, subject, body, string(complaint.Status), "You will be notified of the final outcome.")

	if director != nil {
		escalatedBy := "the assigned authority"
		if escalator != nil {
			escalatedBy = fmt.Sprintf("%s (%s)", escalator.Name, strings.ToUpper(string(escalator.Role)))
		}
		dSubject := fmt.Sprintf("%s - Escalated Complaint: %s", n.cfg.OrganizationName, complaint.Title)
		dBody := fmt.Sprintf(
			"The %s complaint %q has been escalated by %s for final review.",
			complaint.Category, complaint.Title, escalatedBy,
		)
		n.dispatch(director, dSubject, dBody, string(complaint.Status), "Please review it at your earliest convenience.")
	}
}

func (n *SendGridNotifier) ComplaintStatusUpdated(complaint *models.Complaint, submitter *models.User, previous models.ComplaintStatusType) {
	n.statusUpdate(complaint, submitter, fmt.Sprintf(
		"The status of your complaint has been updated from %q.", previous,
	))
}

func (n *SendGridNotifier) statusUpdate(complaint *models.Complaint, submitter *models.User, body string) {
	subject := fmt.Sprintf("%s - Complaint Update: %s", n.cfg.OrganizationName, complaint.Title)
	closing := "You can review the full history in the portal."
	if complaint.Response != "" {
		closing = "Response: " + complaint.Response
	}
	n.dispatch(submitter, subject, body, string(complaint.Status), closing)
}

// dispatch sends one email in the background. Recipients without an
// email on file are skipped; send failures are logged and swallowed.
func (n *SendGridNotifier) dispatch(recipient *models.User, subject, body, status, closing string) {
	if recipient == nil || recipient.Email == "" {
		return
	}

	from := mail.NewEmail(n.cfg.OrganizationName, n.cfg.SendgridFromEmail)
	to := mail.NewEmail(recipient.Name, recipient.Email)
	plainTextContent := fmt.Sprintf("%s Current status: %s. %s", body, status, closing)
	htmlContent := fmt.Sprintf(complaintEmailHTML, subject, subject, body, status, closing, time.Now().Year())
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	if n.cfg.SendgridSandboxMode {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		message.MailSettings = ms
	}

	go func() {
		if _, err := n.client.Send(message); err != nil {
			utils.Logger.WithError(err).Errorf("Failed to send notification email to %s via SendGrid", recipient.Email)
		}
	}()
}
