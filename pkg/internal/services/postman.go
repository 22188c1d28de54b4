package services

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/timetomeet/meetinghub/pkg/internal/models"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.gohtml
var mailTemplatesFS embed.FS

var mailTemplates = template.Must(
	template.New("mail").ParseFS(mailTemplatesFS, "templates/*.gohtml"),
)

// Postman talks to the transactional email gateway. When the SMTP settings
// are absent the whole dispatcher is disabled and every delivery becomes a
// logged no-op; the actions that trigger mail still count as successful.
type Postman struct {
	host     string
	port     int
	username string
	password string
	sender   string
	siteURL  string
}

func NewPostman() *Postman {
	return &Postman{
		host:     viper.GetString("mailer.smtp_host"),
		port:     viper.GetInt("mailer.smtp_port"),
		username: viper.GetString("mailer.username"),
		password: viper.GetString("mailer.password"),
		sender:   viper.GetString("mailer.sender"),
		siteURL:  viper.GetString("domain"),
	}
}

func (v *Postman) Enabled() bool {
	return v != nil && len(v.host) > 0 && len(v.sender) > 0
}

func (v *Postman) deliver(to []string, subject, html string) error {
	if !v.Enabled() {
		log.Debug().Str("subject", subject).Msg("Mailer disabled, skipping delivery...")
		return nil
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", v.sender)
	mail.SetHeader("To", to...)
	mail.SetHeader("Subject", subject)
	mail.SetBody("text/html", html)

	return gomail.NewDialer(v.host, v.port, v.username, v.password).DialAndSend(mail)
}

func (v *Postman) render(name string, data any) (string, error) {
	var out bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&out, name, data); err != nil {
		return "", err
	}
	return out.String(), nil
}

func formatMeetingDate(meeting models.Meeting) string {
	return time.Time(meeting.ScheduledDate).Format("Monday, January 2, 2006")
}

func (v *Postman) DeliverInvitation(to string, meeting models.Meeting, inviterName string) error {
	html, err := v.render("invitation.gohtml", map[string]any{
		"Title":       meeting.Title,
		"Date":        formatMeetingDate(meeting),
		"Time":        meeting.ScheduledTime,
		"Location":    meeting.Location,
		"InviterName": inviterName,
		"MeetingURL":  fmt.Sprintf("%s/meetings/%d", v.siteURL, meeting.ID),
	})
	if err != nil {
		return err
	}

	return v.deliver([]string{to}, fmt.Sprintf("Meeting Invitation: %s", meeting.Title), html)
}

func (v *Postman) DeliverSummary(to []string, meeting models.Meeting, items []models.DiscussionItem, todos []models.Todo) error {
	html, err := v.render("summary.gohtml", map[string]any{
		"Title": meeting.Title,
		"Date":  formatMeetingDate(meeting),
		"Items": items,
		"Todos": lo.Map(todos, func(item models.Todo, idx int) map[string]any {
			var due string
			if item.DueDate != nil {
				due = time.Time(*item.DueDate).Format("January 2, 2006")
			}
			return map[string]any{
				"Title":         item.Title,
				"AssignedEmail": item.AssignedEmail,
				"DueDate":       due,
			}
		}),
	})
	if err != nil {
		return err
	}

	return v.deliver(to, fmt.Sprintf("Meeting Summary: %s", meeting.Title), html)
}

func (v *Postman) DeliverReminder(to []string, meeting models.Meeting) error {
	html, err := v.render("reminder.gohtml", map[string]any{
		"Title":      meeting.Title,
		"Date":       formatMeetingDate(meeting),
		"Time":       meeting.ScheduledTime,
		"Location":   meeting.Location,
		"MeetingURL": fmt.Sprintf("%s/meetings/%d", v.siteURL, meeting.ID),
	})
	if err != nil {
		return err
	}

	return v.deliver(to, fmt.Sprintf("Reminder: %s - Tomorrow", meeting.Title), html)
}

func (v *Postman) DeliverPasswordReset(to string, token string) error {
	html, err := v.render("reset.gohtml", map[string]any{
		"ResetURL": fmt.Sprintf("%s/auth/reset-password?token=%s", v.siteURL, token),
	})
	if err != nil {
		return err
	}

	return v.deliver([]string{to}, "Reset your MeetingHub password", html)
}
