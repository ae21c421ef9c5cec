package client

import (
	"bytes"
	"fmt"
	"html/template"
)

var (
	verificationTemplate = template.Must(template.New("verification").Parse(
		`<p>Your verification code is <strong>{{.Code}}</strong>.</p>
<p>It expires in {{.ValidFor}}.</p>`))

	invitationTemplate = template.Must(template.New("invitation").Parse(
		`<p>You have been invited to join the board <strong>{{.BoardName}}</strong>.</p>
<p><a href="{{.Link}}">Open your invitations</a> to accept or decline.</p>`))
)

// VerificationEmail renders the sign-in code email
func VerificationEmail(to, code, validFor string) (EmailMessage, error) {
	body, err := render(verificationTemplate, struct{ Code, ValidFor string }{code, validFor})
	if err != nil {
		return EmailMessage{}, err
	}
	return EmailMessage{To: to, Subject: "Your verification code", HTMLBody: body}, nil
}

// InvitationEmail renders the board invitation email
func InvitationEmail(to, boardName, frontendURL string) (EmailMessage, error) {
	body, err := render(invitationTemplate, struct{ BoardName, Link string }{boardName, frontendURL + "/invitations"})
	if err != nil {
		return EmailMessage{}, err
	}
	return EmailMessage{To: to, Subject: fmt.Sprintf("Invitation to %s", boardName), HTMLBody: body}, nil
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}
