package di

// CyclePolicy decides which dependency cycles pass validation.
type CyclePolicy int

const (
	// RejectCycles fails every cycle, whatever its edge kinds.
	RejectCycles CyclePolicy = iota
	// AllowSetterCycles accepts cycles between singletons that contain at
	// least one setter or field edge. They are resolved at runtime by handing
	// out the raw singleton before its injections run.
	AllowSetterCycles
)

func (p CyclePolicy) String() string {
	if p == AllowSetterCycles {
		return "allow_setter"
	}
	return "reject"
}

// edge is a declared dependency of a descriptor, before resolution.
type edge struct {
	dep         Dependency
	label       string
	constructor bool
}

// link is a resolved edge between two registry entries.
type link struct {
	to          *entry
	label       string
	constructor bool
}

type linkKey struct{ from, to *entry }

// graph is the resolved dependency graph of a sealed registry.
type graph struct {
	nodes []*entry
	adj   map[*entry][]link
	// back holds edges closing accepted cycles; ordering ignores them.
	back map[linkKey]bool
}

// buildGraph qualifier-resolves every edge so ambiguity and missing
// dependencies surface before any cycle check.
func buildGraph(reg *registry) (*graph, error) {
	g := &graph{
		nodes: reg.entries(),
		adj:   make(map[*entry][]link),
		back:  make(map[linkKey]bool),
	}
	for _, e := range g.nodes {
		for _, ed := range e.desc.edges() {
			target, err := selectCandidate(ed.dep, reg.lookupByType(ed.dep.Type), e.desc.ID)
			if err != nil {
				return nil, err
			}
			g.adj[e] = append(g.adj[e], link{to: target, label: ed.label, constructor: ed.constructor})
		}
	}
	return g, nil
}

const (
	unvisited = iota
	visiting
	visited
)

// checkCycles runs a depth-first search with in-progress marks. A revisit of
// an in-progress node is a cycle; the error carries its full path.
func (g *graph) checkCycles(policy CyclePolicy) error {
	if policy == AllowSetterCycles {
		// Constructor-only cycles can never be broken by an early reference.
		onlyCtor := func(l link) bool { return l.constructor }
		if err := g.dfs(onlyCtor, nil); err != nil {
			return err
		}
		return g.dfs(nil, permitSetterCycle)
	}
	return g.dfs(nil, nil)
}

func permitSetterCycle(nodes []*entry, links []link) bool {
	for _, n := range nodes {
		if !n.singleton() {
			return false
		}
	}
	for _, l := range links {
		if !l.constructor {
			return true
		}
	}
	return false
}

func (g *graph) dfs(include func(link) bool, permit func([]*entry, []link) bool) error {
	color := make(map[*entry]int, len(g.nodes))
	var (
		stack []*entry
		// path[i] is the link from stack[i] to stack[i+1].
		path []link
	)

	var visit func(e *entry) error
	visit = func(e *entry) error {
		color[e] = visiting
		stack = append(stack, e)

		for _, l := range g.adj[e] {
			if include != nil && !include(l) {
				continue
			}
			switch color[l.to] {
			case visiting:
				start := indexOf(stack, l.to)
				nodes := stack[start:]
				links := append(append([]link(nil), path[start:]...), l)
				if permit == nil || !permit(nodes, links) {
					return errCircular(append(ids(nodes), l.to.desc.ID))
				}
				g.back[linkKey{from: e, to: l.to}] = true
			case unvisited:
				path = append(path, l)
				if err := visit(l.to); err != nil {
					return err
				}
				path = path[:len(path)-1]
			}
		}

		stack = stack[:len(stack)-1]
		color[e] = visited
		return nil
	}

	for _, e := range g.nodes {
		if color[e] == unvisited {
			if err := visit(e); err != nil {
				return err
			}
		}
	}
	return nil
}

// order returns the entries with every dependency before its dependents.
// Among ready entries the earliest registered goes first.
func (g *graph) order() []*entry {
	inDegree := make(map[*entry]int, len(g.nodes))
	dependents := make(map[*entry][]*entry)

	for _, e := range g.nodes {
		for _, l := range g.adj[e] {
			if g.back[linkKey{from: e, to: l.to}] {
				continue
			}
			inDegree[e]++
			dependents[l.to] = append(dependents[l.to], e)
		}
	}

	var ready []*entry
	for _, e := range g.nodes {
		if inDegree[e] == 0 {
			ready = append(ready, e)
		}
	}

	result := make([]*entry, 0, len(g.nodes))
	done := make(map[*entry]bool, len(g.nodes))
	for len(ready) > 0 {
		next := 0
		for i, e := range ready {
			if e.index < ready[next].index {
				next = i
			}
		}
		e := ready[next]
		ready = append(ready[:next], ready[next+1:]...)
		result = append(result, e)
		done[e] = true

		for _, d := range dependents[e] {
			inDegree[d]--
			if inDegree[d] == 0 {
				ready = append(ready, d)
			}
		}
	}

	// Only reachable with cycles that were never marked; keep them in registration order.
	for _, e := range g.nodes {
		if !done[e] {
			result = append(result, e)
		}
	}
	return result
}

func indexOf(stack []*entry, e *entry) int {
	for i, s := range stack {
		if s == e {
			return i
		}
	}
	return 0
}
