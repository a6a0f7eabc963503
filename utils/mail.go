package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
)

// RenderTemplate executes the HTML template at templatePath with data and
// returns the rendered body.
func RenderTemplate(templatePath string, data any) (string, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}

	return body.String(), nil
}

// SendEmail delivers a message over SMTP. When htmlBody is non-empty the
// message is sent as multipart/alternative with the plain-text body as
// fallback; otherwise it is sent as plain text only.
func SendEmail(emailTo string, emailSubject string, plainBody string, htmlBody string) error {
	from := os.Getenv("FROM_EMAIL")

	var message bytes.Buffer
	if htmlBody != "" {
		boundary := "ppg-mail-boundary"
		fmt.Fprintf(&message,
			"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n",
			from, emailTo, emailSubject, boundary)
		fmt.Fprintf(&message,
			"--%s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n",
			boundary, plainBody)
		fmt.Fprintf(&message,
			"--%s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s\r\n",
			boundary, htmlBody)
		fmt.Fprintf(&message, "--%s--\r\n", boundary)
	} else {
		fmt.Fprintf(&message,
			"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
			from, emailTo, emailSubject, plainBody)
	}

	auth := smtp.PlainAuth(
		"",
		from,
		os.Getenv("FROM_EMAIL_PASSWORD"),
		os.Getenv("FROM_EMAIL_SMTP"),
	)

	if err := smtp.SendMail(os.Getenv("SMTP_ADDRESS"), auth, from, []string{emailTo}, message.Bytes()); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
