package tst

import "github.com/tstdb/tst/internal/arena"

// contains walks the arena comparing key[i] to the current node's
// splitchar: it descends low/high on a mismatch, descends equal and
// advances i on a match that isn't the key's last byte, and returns the
// terminal node's flag on a match that is.
func contains(a *arena.Arena, key []byte) bool {
	if len(key) == 0 {
		return false
	}
	cur := uint32(1)
	for i := 0; i < len(key); {
		node := a.At(cur)
		d := int(key[i]) - int(node.Splitchar)
		switch {
		case d < 0:
			if node.Low == arena.Nil {
				return false
			}
			cur = node.Low
		case d > 0:
			if node.High == arena.Nil {
				return false
			}
			cur = node.High
		default:
			if i == len(key)-1 {
				return node.Flag
			}
			if node.Equal == arena.Nil {
				return false
			}
			cur = node.Equal
			i++
		}
	}
	return false
}

// mutate is the single routine behind both put (clear=false) and remove
// (clear=true). It returns whether the logical key set changed, and if
// so, the signed delta to apply to the caller's key count (+1 for an
// insertion, -1 for a tombstone).
func mutate(a *arena.Arena, key []byte, clear bool) (changed bool, delta int) {
	if len(key) == 0 || len(key) > maxKeyLen {
		return false, 0
	}

	cur := uint32(1)
	for i := 0; i < len(key); {
		node := a.At(cur)
		d := int(key[i]) - int(node.Splitchar)
		switch {
		case d < 0:
			if node.Low == arena.Nil {
				return splice(a, cur, lowChild, key[i:], clear)
			}
			cur = node.Low
		case d > 0:
			if node.High == arena.Nil {
				return splice(a, cur, highChild, key[i:], clear)
			}
			cur = node.High
		default:
			if i == len(key)-1 {
				return terminate(a, cur, clear)
			}
			if node.Equal == arena.Nil {
				return splice(a, cur, equalChild, key[i+1:], clear)
			}
			cur = node.Equal
			i++
		}
	}
	return false, 0
}

type childSlot int

const (
	lowChild childSlot = iota
	equalChild
	highChild
)

// terminate handles the walk landing exactly on the key's terminal byte on
// an existing path: a flag flip, in either direction.
func terminate(a *arena.Arena, idx uint32, clear bool) (bool, int) {
	node := a.At(idx)
	if clear {
		if !node.Flag {
			return false, 0
		}
		node.Flag = false
		return true, -1
	}
	if node.Flag {
		return false, 0
	}
	node.Flag = true
	return true, 1
}

// splice links a fresh chain of nodes, one per remaining byte, onto prev
// via the child slot the failed descent used. In clear mode the key was
// never fully present, so there is nothing to remove: no nodes are
// allocated.
func splice(a *arena.Arena, prevIdx uint32, slot childSlot, remaining []byte, clear bool) (bool, int) {
	if clear {
		return false, 0
	}

	first := arena.Nil
	prevNew := arena.Nil
	for i, b := range remaining {
		idx := a.ReserveOne()
		n := a.At(idx)
		n.Splitchar = b
		if i == len(remaining)-1 {
			n.Flag = true
		}
		if i == 0 {
			first = idx
		} else {
			a.At(prevNew).Equal = idx
		}
		prevNew = idx
	}

	prev := a.At(prevIdx)
	switch slot {
	case lowChild:
		prev.Low = first
	case equalChild:
		prev.Equal = first
	case highChild:
		prev.High = first
	}
	return true, 1
}
