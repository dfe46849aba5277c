package email

import (
	"bytes"
	"html/template"
)

const activationTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>Welcome to UniMatch</h2>
  <p>Confirm your university email address to activate your account:</p>
  <p><a href="{{.ActivationURL}}">Activate my account</a></p>
  <p>The link expires in 24 hours. If you did not sign up, ignore this mail.</p>
</body>
</html>`

var tmplActivation = template.Must(template.New("activation").Parse(activationTemplate))

// RenderActivation renders the activation email body.
func RenderActivation(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := tmplActivation.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
