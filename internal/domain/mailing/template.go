// Package mailing define las plantillas de correo y su llenado.
package mailing

import (
	"strconv"
	"strings"
	"time"
)

// Template plantilla de correo con marcadores {{name}} y {{year}}.
type Template struct {
	ID      int
	Name    string
	Subject string
	Body    string
}

// Templates plantillas incorporadas.
var Templates = []Template{
	{
		ID:      1,
		Name:    "Tax Documents",
		Subject: "Attached: Tax {{year}} Documents",
		Body: `Hello {{name}},

Please find attached your tax documents {{year}}; We suggest you keep them safe for the next six years.
If you have any further questions, contact us and we'll be happy to assist.

Thank you for filing your taxes with us, we hope to see you next year!

Best regards`,
	},
}

// FindTemplate busca una plantilla por id.
func FindTemplate(id int) (Template, bool) {
	for _, t := range Templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Fill reemplaza {{name}} por el primer nombre del cliente y {{year}} por el
// año fiscal (año anterior a now).
func (t Template) Fill(clientName string, now time.Time) (subject, body string) {
	r := strings.NewReplacer(
		"{{year}}", strconv.Itoa(now.Year()-1),
		"{{name}}", FirstName(clientName),
	)
	return r.Replace(t.Subject), r.Replace(t.Body)
}

// FirstName primera palabra del nombre.
func FirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// PlainToHTML convierte saltos de línea de texto plano en <br/>.
func PlainToHTML(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.ReplaceAll(body, "\n", "<br/>")
}
