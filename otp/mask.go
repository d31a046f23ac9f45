package otp

import "strings"

// MaskEmail returns a partially redacted copy of an address that is safe to
// echo back to the client: the first two characters of the local part and the
// full domain survive, the rest is replaced with a fixed mask. Input without
// an "@" is masked wholesale rather than rejected.
func MaskEmail(correo string) string {
	at := strings.Index(correo, "@")
	if at < 0 {
		if len(correo) > 2 {
			return correo[:2] + "***"
		}
		return "***"
	}
	local, domain := correo[:at], correo[at:]
	if len(local) > 2 {
		local = local[:2]
	}
	return local + "***" + domain
}
