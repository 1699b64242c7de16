package domain

// Session identifica al comerciante autenticado que ejecuta una operación.
// Se construye en la capa HTTP a partir del token y se pasa explícitamente a cada caso de uso.
type Session struct {
	UserID string
}

// Valid informa si la sesión trae un usuario.
func (s Session) Valid() bool {
	return s.UserID != ""
}
