package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// SendHotLeadAlert mails the team when the scoring backend flags a
// freshly captured lead as Hot.
func (s *EmailSender) SendHotLeadAlert(to, leadName, company, score string) error {
	data := HotLeadEmailData{
		LeadName: leadName,
		Company:  company,
		Score:    score,
	}

	tmplPath := filepath.Join("templates", "hot_lead.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("read hot lead template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("render hot lead template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "alerts@leadflow.app")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("🔥 Hot lead: %s", leadName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send SMTP email: %w", err)
	}

	return nil
}
