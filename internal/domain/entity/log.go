package entity

import "encoding/json"

// Log es una bitácora de solo-anexar. No expone operaciones para modificar ni
// borrar entradas: Append devuelve un Log nuevo y Entries entrega una copia.
type Log[E any] struct {
	entries []E
}

// NewLog construye una bitácora a partir de entradas existentes (lectura desde la DB).
func NewLog[E any](entries ...E) Log[E] {
	cp := make([]E, len(entries))
	copy(cp, entries)
	return Log[E]{entries: cp}
}

// Append devuelve una bitácora con e al final.
func (l Log[E]) Append(e E) Log[E] {
	next := make([]E, len(l.entries), len(l.entries)+1)
	copy(next, l.entries)
	return Log[E]{entries: append(next, e)}
}

// Len cantidad de entradas.
func (l Log[E]) Len() int { return len(l.entries) }

// Entries copia de las entradas en orden de inserción.
func (l Log[E]) Entries() []E {
	cp := make([]E, len(l.entries))
	copy(cp, l.entries)
	return cp
}

// NewestFirst copia de las entradas de la más reciente a la más antigua.
func (l Log[E]) NewestFirst() []E {
	n := len(l.entries)
	out := make([]E, n)
	for i, e := range l.entries {
		out[n-1-i] = e
	}
	return out
}

// Last devuelve la última entrada.
func (l Log[E]) Last() (E, bool) {
	var zero E
	if len(l.entries) == 0 {
		return zero, false
	}
	return l.entries[len(l.entries)-1], true
}

func (l Log[E]) MarshalJSON() ([]byte, error) {
	if l.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.entries)
}

func (l *Log[E]) UnmarshalJSON(b []byte) error {
	var entries []E
	if err := json.Unmarshal(b, &entries); err != nil {
		return err
	}
	l.entries = entries
	return nil
}
