package booking

import (
	"sync"
)

// keyedMutex serializa por clave de franja: dos reservas sobre la misma
// (agenda, fecha, hora) se excluyen entre sí, mientras que franjas
// distintas avanzan sin contención. Las entradas se liberan cuando nadie
// las espera para que el mapa no crezca con cada franja vista.
type keyedMutex struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		entries: make(map[string]*lockEntry),
	}
}

// Lock bloquea la clave y devuelve la función que la libera.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	entry, exists := k.entries[key]
	if !exists {
		entry = &lockEntry{}
		k.entries[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}
