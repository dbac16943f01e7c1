package scene

import "context"

// minGroupPopulation is the smallest descendant count (placeholder included)
// a group placeholder needs to survive pruning. Below it the group holds at
// most one member and adds no structure.
const minGroupPopulation = 3

// pruneGroups destroys placeholders with fewer than two members and
// reattaches any sole member to the placeholder's former parent. Host
// failures here abort the run; a half-pruned scene graph is not safe to
// hand back.
func (a *Assembler) pruneGroups(ctx context.Context, r *run) error {
	snapshot := make([]groupEntry, len(r.groups))
	copy(snapshot, r.groups)

	survivors := r.groups[:0]
	for _, entry := range snapshot {
		count, err := a.host.DescendantCount(ctx, entry.placeholder)
		if err != nil {
			return err
		}
		if count >= minGroupPopulation {
			survivors = append(survivors, entry)
			continue
		}

		parent, err := a.host.Parent(ctx, entry.placeholder)
		if err != nil {
			return err
		}
		children, err := a.host.Children(ctx, entry.placeholder)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := a.host.SetParent(ctx, child, parent); err != nil {
				return err
			}
		}
		if err := a.host.DestroyObject(ctx, entry.placeholder); err != nil {
			return err
		}
		r.result.Pruned++
		a.logger.Debug("pruned group placeholder",
			"group", entry.group.ID, "members", count-1)
	}

	r.groups = survivors
	return nil
}
