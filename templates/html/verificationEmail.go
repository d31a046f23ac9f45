package templates

import (
	"fmt"
	"html"
)

// RenderVerificationCode generates the HTML body for the verification code
// email. minutos is how long the code stays valid.
func RenderVerificationCode(codigo string, minutos int) string {
	return fmt.Sprintf(`<div style="font-family:system-ui;padding:16px">
  <h2>Verificación de cuenta</h2>
  <p>Tu código:</p>
  <div style="font-size:22px;font-weight:700;letter-spacing:3px">%s</div>
  <p style="color:#666">Válido por %d minutos.</p>
</div>`, html.EscapeString(codigo), minutos)
}
