package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
}

type rfpUnlockedEmailData struct {
	baseEmailData
	ContactName string
	Company     string
	RFPTitle    string
	RFPID       string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func renderRFPUnlocked(notice RFPUnlockedNotice) (subject, content string, err error) {
	subject = fmt.Sprintf(subjectRFPUnlockedFmt, notice.RFPTitle)
	content, err = renderEmailTemplate("rfp_unlocked.html", rfpUnlockedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Un proveedor ha desbloqueado su solicitud",
			Heading: "Un proveedor quiere contactar con usted",
		},
		ContactName: notice.ContactName,
		Company:     notice.Company,
		RFPTitle:    notice.RFPTitle,
		RFPID:       notice.RFPID,
	})
	return subject, content, err
}
