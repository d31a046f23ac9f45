package models

// RegistroRequest is the body for a registration submission
type RegistroRequest struct {
	Nombre           string `json:"nombre"`
	Ap               string `json:"ap"`
	Am               string `json:"am"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	Telefono         string `json:"telefono"`
	PreguntaSecreta  string `json:"preguntaSecreta"`
	RespuestaSecreta string `json:"respuestaSecreta"`
}

// RegistroResponse is returned when a submission has been staged and its
// verification code sent
type RegistroResponse struct {
	Success     bool   `json:"success"`
	Mensaje     string `json:"mensaje"`
	Requires2FA bool   `json:"requires2fa"`
	Canal       string `json:"canal"`
	Destino     string `json:"destino"`
	TempToken   string `json:"tempToken"`
}

// VerificarRequest is the body for a code verification attempt
type VerificarRequest struct {
	TempToken string `json:"tempToken"`
	Codigo    string `json:"codigo"`
}

// VerificarResponse is returned when the code matched and the usuario was
// committed
type VerificarResponse struct {
	Success bool           `json:"success"`
	Mensaje string         `json:"mensaje"`
	Usuario UsuarioPublico `json:"usuario"`
}

// ReenviarRequest is the body for a code resend
type ReenviarRequest struct {
	TempToken string `json:"tempToken"`
}

// ReenviarResponse is returned when a fresh code went out
type ReenviarResponse struct {
	Success bool   `json:"success"`
	Mensaje string `json:"mensaje"`
	Canal   string `json:"canal"`
	Destino string `json:"destino"`
}

// LoginRequest is the body for a credential login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed session token
type LoginResponse struct {
	Token string `json:"token"`
	ID    string `json:"_id"`
}
