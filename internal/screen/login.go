package screen

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/romeroalan26/posfacturard-console/internal/api"
	"github.com/romeroalan26/posfacturard-console/internal/dto"
	"github.com/romeroalan26/posfacturard-console/internal/session"
)

// Login drives the authentication form. On success it persists the session;
// failures surface as auth-class messages (5s auto-dismiss), never retried.
type Login struct {
	auth  *api.AuthClient
	store session.Store
	Msgs  *Messages
}

func NewLogin(auth *api.AuthClient, store session.Store, msgTTL time.Duration) *Login {
	return &Login{auth: auth, store: store, Msgs: NewMessages(msgTTL)}
}

// Ingresar authenticates and persists the returned token and user record.
func (s *Login) Ingresar(parent context.Context, email, password string) (*session.Session, error) {
	req := dto.LoginRequest{Email: email, Password: password}
	if err := validateForm(req); err != nil {
		s.Msgs.Push(KindAuth, err.Error())
		return nil, err
	}

	resp, err := s.auth.Login(parent, email, password)
	if err != nil {
		s.Msgs.Push(KindAuth, "Credenciales invalidas o servidor no disponible")
		return nil, err
	}

	sess := session.Session{
		Token: resp.Token,
		User: session.User{
			ID:       resp.Usuario.ID,
			Username: resp.Usuario.Username,
			Rol:      resp.Usuario.Rol,
		},
	}
	if err := s.store.Save(sess); err != nil {
		s.Msgs.Push(KindAuth, "No se pudo guardar la sesion")
		return nil, err
	}
	log.Info().Str("usuario", sess.User.Username).Str("rol", sess.User.Rol).Msg("sesion iniciada")
	return &sess, nil
}

// Registrar creates a new account through the registration endpoint.
func (s *Login) Registrar(parent context.Context, req dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	if err := validateForm(req); err != nil {
		s.Msgs.Push(KindAuth, err.Error())
		return nil, err
	}
	usuario, err := s.auth.Register(parent, req)
	if err != nil {
		s.Msgs.PushError(err)
		return nil, err
	}
	return usuario, nil
}

// Salir clears the persisted session.
func (s *Login) Salir() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	log.Info().Msg("sesion cerrada")
	return nil
}
