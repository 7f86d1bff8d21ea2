// Package sesion holds the explicit session object injected at the
// composition root. It replaces ambient auth context: consumers receive a
// read-only *Sesion instead of reaching into a global.
package sesion

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the custom claims the backend embeds in every access token.
type Claims struct {
	UsuarioID int64  `json:"iid_usuario"`
	Nombre    string `json:"nombre"`
	Rol       string `json:"rol"`
	jwt.RegisteredClaims
}

// Sesion is the authenticated identity behind every lifecycle call
// (iid_usuario_aprueba, iid_usuario_recibe, ...).
type Sesion struct {
	Token     string
	UsuarioID int64
	Nombre    string
	Rol       string
	Expira    time.Time
}

var ErrTokenInvalido = errors.New("token de sesión inválido")

// DesdeToken builds a Sesion from a bearer token. The signature is NOT
// verified here — the backend is the authority and rejects forged tokens on
// every call; the client only needs the identity fields for display and for
// the iid_usuario_* payload fields.
func DesdeToken(token string) (*Sesion, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, ErrTokenInvalido
	}
	if claims.UsuarioID <= 0 {
		return nil, ErrTokenInvalido
	}
	s := &Sesion{
		Token:     token,
		UsuarioID: claims.UsuarioID,
		Nombre:    claims.Nombre,
		Rol:       claims.Rol,
	}
	if claims.ExpiresAt != nil {
		s.Expira = claims.ExpiresAt.Time
	}
	return s, nil
}

// Vigente reports whether the session is still usable at the given instant.
// A token without expiry is treated as vigente; the backend has the last word.
func (s *Sesion) Vigente(ahora time.Time) bool {
	return s.Expira.IsZero() || ahora.Before(s.Expira)
}
