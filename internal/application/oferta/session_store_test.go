package oferta

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costealo/ofertas-api/internal/domain"
	"github.com/costealo/ofertas-api/internal/domain/entity"
)

// Start abre una sesión con un wizard en el paso 1; With la encuentra.
func TestSessionStore_StartYWith(t *testing.T) {
	store := NewSessionStore(0)
	id := store.Start("user-1")
	require.NotEmpty(t, id)

	err := store.With(id, "user-1", func(w *Wizard) error {
		assert.Equal(t, StepEstrategia, w.Step())
		return w.SelectStrategy(entity.StrategyDiscount)
	})
	require.NoError(t, err)

	// El estado persiste entre llamadas.
	err = store.With(id, "user-1", func(w *Wizard) error {
		assert.Equal(t, entity.StrategyDiscount, w.Strategy())
		return nil
	})
	require.NoError(t, err)
}

// La sesión pertenece a su dueño: otro usuario recibe acceso denegado.
func TestSessionStore_Propiedad(t *testing.T) {
	store := NewSessionStore(0)
	id := store.Start("user-1")

	err := store.With(id, "user-2", func(*Wizard) error { return nil })
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Sesión inexistente o cerrada: ErrSessionNotFound.
func TestSessionStore_NoExisteOCerrada(t *testing.T) {
	store := NewSessionStore(0)
	err := store.With("nope", "user-1", func(*Wizard) error { return nil })
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	id := store.Start("user-1")
	store.Close(id)
	err = store.With(id, "user-1", func(*Wizard) error { return nil })
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

// Las sesiones expiran por inactividad según el TTL.
func TestSessionStore_ExpiraPorTTL(t *testing.T) {
	store := NewSessionStore(10 * time.Minute)
	current := time.Now()
	store.now = func() time.Time { return current }

	id := store.Start("user-1")
	require.Equal(t, 1, store.Len())

	// Justo antes del TTL sigue viva y el acceso renueva lastAccess.
	current = current.Add(9 * time.Minute)
	require.NoError(t, store.With(id, "user-1", func(*Wizard) error { return nil }))

	current = current.Add(9 * time.Minute)
	require.NoError(t, store.With(id, "user-1", func(*Wizard) error { return nil }),
		"el acceso anterior renovó la sesión")

	// Pasado el TTL completo sin actividad, desaparece.
	current = current.Add(11 * time.Minute)
	err := store.With(id, "user-1", func(*Wizard) error { return nil })
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())
}
