package llm

// Registry holds the clients available to the process, grouped by family and
// ordered primary variant first. It is populated once at startup and only
// read afterwards.
type Registry struct {
	families map[Family][]Client
	order    []Family
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{families: make(map[Family][]Client)}
}

// Register adds a family with its variants. Registering a family with no
// variants is a no-op so unavailable providers never become selectable.
func (r *Registry) Register(f Family, variants ...Client) {
	var clients []Client
	for _, v := range variants {
		if v != nil {
			clients = append(clients, v)
		}
	}
	if len(clients) == 0 {
		return
	}
	if _, ok := r.families[f]; !ok {
		r.order = append(r.order, f)
	}
	r.families[f] = clients
}

// Variants returns the clients for f, primary first.
func (r *Registry) Variants(f Family) []Client {
	return r.families[f]
}

// Has reports whether f has at least one client.
func (r *Registry) Has(f Family) bool {
	return len(r.families[f]) > 0
}

// Families lists registered families in registration order.
func (r *Registry) Families() []Family {
	out := make([]Family, len(r.order))
	copy(out, r.order)
	return out
}
