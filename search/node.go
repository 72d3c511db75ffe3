package search

// NodeRecord holds the MCTS statistics for one board state: how many
// playouts have visited it, the running average profit from the
// perspective of the side that just moved into this state, and whether a
// worker is currently expanding from it.
//
// NodeRecord carries no lock of its own - every field is read and written
// only while the owning TranspositionTable's mutex is held (see table.go).
type NodeRecord struct {
	visits        int
	averageProfit float64
	inSearch      bool
}

// newLeafRecord builds the record inserted the first time a board state is
// visited: one sample already folded in.
func newLeafRecord(profit float64) *NodeRecord {
	return &NodeRecord{visits: 1, averageProfit: profit, inSearch: false}
}

// Visits returns the number of playouts recorded at this node.
func (r *NodeRecord) Visits() int { return r.visits }

// AverageProfit returns the running average profit at this node.
func (r *NodeRecord) AverageProfit() float64 { return r.averageProfit }

// InSearch reports whether a worker currently holds this node open for
// expansion.
func (r *NodeRecord) InSearch() bool { return r.inSearch }

// update folds a new sample into the running average in one logical step:
// avg <- (avg*visits + x) / (visits+1); visits <- visits+1.
func (r *NodeRecord) update(sample float64) {
	r.averageProfit = (r.averageProfit*float64(r.visits) + sample) / float64(r.visits+1)
	r.visits++
}
