package dag

import "github.com/specialistvlad/plangridgo/internal/model"

// Visit is a traversal policy decision for one resource.
type Visit int

const (
	// Expand includes the resource and its dependencies.
	Expand Visit = iota
	// Leaf includes the resource without its dependencies.
	Leaf
	// Exclude drops the resource and everything only reachable through it.
	Exclude
)

// Policy decides how a non-root resource appears in a dependency tree. The
// root is always included and expanded.
type Policy func(r model.Resource) Visit

// DefaultPolicy hides completed resources and shows milestones without
// expanding them.
func DefaultPolicy(r model.Resource) Visit {
	switch {
	case r.Complete:
		return Exclude
	case r.Type == model.TypeMilestone:
		return Leaf
	}
	return Expand
}

// NodeKind distinguishes real tree nodes from markers.
type NodeKind string

const (
	NodeResource NodeKind = "resource"
	// NodeCycle marks a dependency already on the current path.
	NodeCycle NodeKind = "cycle"
	// NodeMissing marks a reference to an unknown id.
	NodeMissing NodeKind = "missing"
)

// TreeNode is one node of a dependency tree.
type TreeNode struct {
	ID       string
	Kind     NodeKind
	Resource *model.Resource
	Children []*TreeNode
	// Truncated is set on nodes whose dependencies were not expanded because
	// the depth ceiling was reached.
	Truncated bool
}

// DependencyTree builds the tree of dependencies under rootID. A nil policy
// means DefaultPolicy; maxDepth <= 0 means DefaultMaxDepth.
func (a *Analyzer) DependencyTree(rootID string, policy Policy, maxDepth int) *TreeNode {
	if policy == nil {
		policy = DefaultPolicy
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	root, ok := a.Resource(rootID)
	if !ok {
		return &TreeNode{ID: rootID, Kind: NodeMissing}
	}
	t := &treeBuilder{a: a, policy: policy, maxDepth: maxDepth, onPath: make(map[string]bool)}
	return t.expand(root, 0)
}

type treeBuilder struct {
	a        *Analyzer
	policy   Policy
	maxDepth int
	onPath   map[string]bool
}

func (t *treeBuilder) expand(r model.Resource, depth int) *TreeNode {
	node := &TreeNode{ID: r.ID, Kind: NodeResource, Resource: &r}
	deps := r.Dependencies()
	if len(deps) == 0 {
		return node
	}
	if depth >= t.maxDepth {
		node.Truncated = true
		return node
	}

	t.onPath[r.ID] = true
	defer delete(t.onPath, r.ID)

	for _, dep := range deps {
		res, ok := t.a.Resource(dep)
		if !ok {
			node.Children = append(node.Children, &TreeNode{ID: dep, Kind: NodeMissing})
			continue
		}
		if t.onPath[dep] {
			node.Children = append(node.Children, &TreeNode{ID: dep, Kind: NodeCycle})
			continue
		}
		visit := t.policy(res)
		if visit == Exclude {
			continue
		}
		if visit == Leaf {
			node.Children = append(node.Children, &TreeNode{ID: dep, Kind: NodeResource, Resource: &res})
			continue
		}
		node.Children = append(node.Children, t.expand(res, depth+1))
	}
	return node
}
