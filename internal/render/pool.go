package render

// Factory supplies lifecycle callbacks for one pool key.
type Factory struct {
	Create  func() *Node
	Reset   func(*Node)
	Dispose func(*Node)
}

// Pool reuses retained render nodes by category key to avoid allocation
// churn. Pools are strictly partitioned: acquiring under one key never
// returns a node created under another.
type Pool struct {
	maxPerKey int
	factories map[string]Factory
	idle      map[string][]*Node
}

// NewPool creates a pool keeping at most maxPerKey idle nodes per key.
// Non-positive values fall back to 64.
func NewPool(maxPerKey int) *Pool {
	if maxPerKey <= 0 {
		maxPerKey = 64
	}
	return &Pool{
		maxPerKey: maxPerKey,
		factories: map[string]Factory{},
		idle:      map[string][]*Node{},
	}
}

// Register associates key with a factory. Missing callbacks get defaults.
func (p *Pool) Register(key string, f Factory) {
	if f.Create == nil {
		f.Create = func() *Node { return &Node{} }
	}
	if f.Reset == nil {
		f.Reset = func(n *Node) { n.reset() }
	}
	if f.Dispose == nil {
		f.Dispose = func(n *Node) { n.destroyed = true }
	}
	p.factories[key] = f
}

// Acquire returns a pooled idle node for key, resetting it, or creates a
// fresh one. Unregistered keys get a default factory on first use.
func (p *Pool) Acquire(key string) *Node {
	f, ok := p.factories[key]
	if !ok {
		p.Register(key, Factory{})
		f = p.factories[key]
	}

	if idle := p.idle[key]; len(idle) > 0 {
		n := idle[len(idle)-1]
		p.idle[key] = idle[:len(idle)-1]
		f.Reset(n)
		n.Key = key
		n.destroyed = false
		return n
	}

	n := f.Create()
	n.reset()
	n.Key = key
	return n
}

// Release returns the node to its key's idle list, or disposes it when the
// idle list is already at capacity.
func (p *Pool) Release(n *Node) {
	if n == nil || n.destroyed {
		return
	}
	f, ok := p.factories[n.Key]
	if !ok {
		n.destroyed = true
		return
	}
	if len(p.idle[n.Key]) >= p.maxPerKey {
		f.Dispose(n)
		return
	}
	p.idle[n.Key] = append(p.idle[n.Key], n)
}

// IdleCount returns the idle node count for key.
func (p *Pool) IdleCount(key string) int { return len(p.idle[key]) }
