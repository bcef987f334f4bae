package mail

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	texttemplate "text/template"
)

const passwordResetSubject = "Redefinição de Senha para Republic"

//go:embed templates/*
var templateFS embed.FS

var (
	resetHTML = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/password_reset.html"))
	resetText = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/password_reset.txt"))
)

type resetData struct {
	Link     string
	ValidFor string
}

// PasswordReset builds the reset e-mail for to, pointing at link.
func PasswordReset(to, link string) (Message, error) {
	data := resetData{Link: link, ValidFor: "1 hora"}

	var html, text bytes.Buffer
	if err := resetHTML.Execute(&html, data); err != nil {
		return Message{}, err
	}
	if err := resetText.Execute(&text, data); err != nil {
		return Message{}, err
	}

	return Message{
		To:      to,
		Subject: passwordResetSubject,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
