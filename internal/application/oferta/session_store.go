package oferta

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/costealo/ofertas-api/internal/domain"
)

// DefaultSessionTTL vida de una sesión de wizard sin actividad.
const DefaultSessionTTL = 30 * time.Minute

type session struct {
	wizard     *Wizard
	userID     string
	lastAccess time.Time
}

// SessionStore guarda las sesiones de wizard en memoria, una por creación en
// curso. Cada sesión pertenece a un usuario; el store serializa todo acceso
// con un mutex (el Wizard en sí no es seguro para concurrencia). Las sesiones
// expiran por inactividad y se purgan de forma perezosa en cada operación.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*session

	now func() time.Time // reemplazable en tests
}

// NewSessionStore construye el store. ttl ≤ 0 usa DefaultSessionTTL.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// Start abre una sesión nueva para el usuario y devuelve su ID.
func (s *SessionStore) Start(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpired()

	id := uuid.New().String()
	s.sessions[id] = &session{
		wizard:     NewWizard(),
		userID:     userID,
		lastAccess: s.now(),
	}
	return id
}

// With ejecuta fn sobre el wizard de la sesión bajo el lock del store.
// Devuelve domain.ErrSessionNotFound si la sesión no existe o expiró y
// domain.ErrForbidden si pertenece a otro usuario.
func (s *SessionStore) With(sessionID, userID string, fn func(w *Wizard) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpired()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	if sess.userID != userID {
		return domain.ErrForbidden
	}
	sess.lastAccess = s.now()
	return fn(sess.wizard)
}

// Close elimina la sesión (wizard cerrado tras activar con éxito o cancelar).
func (s *SessionStore) Close(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len cantidad de sesiones vivas (tras purgar expiradas).
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpired()
	return len(s.sessions)
}

// purgeExpired elimina sesiones vencidas. Llamar con el lock tomado.
func (s *SessionStore) purgeExpired() {
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.lastAccess.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
