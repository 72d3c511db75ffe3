package search

import (
	"fmt"
	"sync"

	"weiqi/board"
)

// entry pairs a stored NodeRecord with the board it was inserted for, so a
// Key collision between two structurally distinct boards can be told apart
// from a true repeat visit.
type entry struct {
	board board.Board
	rec   *NodeRecord
}

// TranspositionTable maps board states to NodeRecords and is the one piece
// of shared mutable state every search worker touches. A single mutex
// protects both the map and every NodeRecord reachable through it - the
// table never hands out a lock-free view of its contents.
//
// Each map bucket holds every entry whose board hashes to the same Key;
// lookups walk the (normally one-element) bucket and compare boards with
// Equals to resolve the rare hash collision, matching the BoardKey contract
// of SPEC_FULL.md §3/§4.2.
//
// Playouts and board cloning happen outside this mutex; only the small,
// constant-time statistics bookkeeping happens while it is held.
type TranspositionTable struct {
	mu      sync.Mutex
	records map[board.BoardKey][]entry
}

// NewTranspositionTable returns an empty table.
func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{records: make(map[board.BoardKey][]entry)}
}

// lookup finds the record for b, if any, scanning b.Key()'s bucket for a
// structurally equal board. Callers must hold t.mu.
func (t *TranspositionTable) lookup(b board.Board) (*NodeRecord, bool) {
	for _, e := range t.records[b.Key()] {
		if e.board.Equals(b) {
			return e.rec, true
		}
	}
	return nil, false
}

// Get returns the NodeRecord for b, if one exists.
func (t *TranspositionTable) Get(b board.Board) (*NodeRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lookup(b)
}

// GetChild returns the NodeRecord for the state reached by playing move on
// b, if one exists. The child board is computed before the table is
// locked; only the bucket lookup itself happens under the mutex.
func (t *TranspositionTable) GetChild(b board.Board, move board.PositionIndex) (*NodeRecord, bool) {
	child := b.Play(move)
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lookup(child)
}

// Insert installs rec for b. It is a programming error to insert over an
// existing board - callers insert only on a node's first visit (§7).
func (t *TranspositionTable) Insert(b board.Board, rec *NodeRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := b.Key()
	for _, e := range t.records[key] {
		if e.board.Equals(b) {
			panic(fmt.Sprintf("search: duplicate insert for board key %v", key))
		}
	}
	t.records[key] = append(t.records[key], entry{board: b, rec: rec})
}

// setInSearch marks or clears rec.inSearch under the table's mutex.
func (t *TranspositionTable) setInSearch(rec *NodeRecord, value bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec.inSearch = value
}

// applySample folds sample into rec's running average under the table's
// mutex.
func (t *TranspositionTable) applySample(rec *NodeRecord, sample float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec.update(sample)
}

// withChildren runs fn once per move in moves, holding the table's mutex
// for the whole enumeration, so the selection policy observes a single
// consistent snapshot of every child's statistics. fn receives the move and
// the child's record (nil if absent).
func (t *TranspositionTable) withChildren(parent board.Board, moves []board.PositionIndex, fn func(move board.PositionIndex, rec *NodeRecord)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, move := range moves {
		child := parent.Play(move)
		rec, _ := t.lookup(child)
		fn(move, rec)
	}
}

// Size returns the number of records currently in the table. Intended for
// tests and diagnostics, not the search hot path.
func (t *TranspositionTable) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	size := 0
	for _, bucket := range t.records {
		size += len(bucket)
	}
	return size
}

// Each calls fn once per stored record, holding the table's mutex for the
// duration. Intended for invariant sweeps in tests.
func (t *TranspositionTable) Each(fn func(rec *NodeRecord)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, bucket := range t.records {
		for _, e := range bucket {
			fn(e.rec)
		}
	}
}
