package dataset

import (
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/knntune/core"
)

// Partition is an ordered set of named, disjoint Groups whose union is the
// parent Group.
type Partition struct {
	parent Group
	names  []string
	groups []Group
}

// NewPartition builds and validates a Partition.
func NewPartition(parent Group, names []string, groups []Group) (*Partition, error) {
	if len(names) != len(groups) {
		return nil, fmt.Errorf("dataset: %d names for %d groups: %w", len(names), len(groups), core.ErrInvalidConfiguration)
	}
	p := &Partition{
		parent: parent,
		names:  slices.Clone(names),
		groups: slices.Clone(groups),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks names are unique and groups are disjoint, exhaustive and
// drawn from the parent's dataset.
func (p *Partition) Validate() error {
	seen := make(map[string]struct{}, len(p.names))
	for _, n := range p.names {
		if _, dup := seen[n]; dup {
			return fmt.Errorf("dataset: duplicate group name %q: %w", n, core.ErrInvalidConfiguration)
		}
		seen[n] = struct{}{}
	}

	union := roaring.New()
	for i, g := range p.groups {
		if g.Len() > 0 && !g.SameDataset(p.parent) {
			return fmt.Errorf("dataset: group %q belongs to another dataset: %w", p.names[i], core.ErrInvalidConfiguration)
		}
		set := g.Bitmap()
		if union.Intersects(set) {
			return fmt.Errorf("dataset: group %q overlaps an earlier group: %w", p.names[i], core.ErrInvalidConfiguration)
		}
		union.Or(set)
	}
	if !union.Equals(p.parent.Bitmap()) {
		return fmt.Errorf("dataset: groups cover %d of %d members: %w", union.GetCardinality(), p.parent.Len(), core.ErrInvalidConfiguration)
	}
	return nil
}

// Len returns the number of groups.
func (p *Partition) Len() int { return len(p.groups) }

// Names returns the group names in order.
func (p *Partition) Names() []string { return slices.Clone(p.names) }

// Group returns the i-th group.
func (p *Partition) Group(i int) Group { return p.groups[i] }

// Groups returns the groups in order.
func (p *Partition) Groups() []Group { return slices.Clone(p.groups) }

// Parent returns the partitioned Group.
func (p *Partition) Parent() Group { return p.parent }

// ByName returns the group called name.
func (p *Partition) ByName(name string) (Group, bool) {
	i := slices.Index(p.names, name)
	if i < 0 {
		return Group{}, false
	}
	return p.groups[i], true
}
