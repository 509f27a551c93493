package git

import (
	"context"
	"fmt"

	"github.com/thiagokokada/gitrepo/internal/git/command"
	"github.com/thiagokokada/gitrepo/internal/git/object"
	"github.com/thiagokokada/gitrepo/internal/git/parse"
)

// Refs lists local branches, remote-tracking branches and tags in show-ref
// order. Annotated tags carry the sha of the commit they peel to; other refs
// such as the stash are left out.
func (r *Repository) Refs(ctx context.Context) ([]object.Ref, error) {
	// show-ref exits 1 in a repository without refs.
	res, err := r.run(ctx, command.ShowRefs(), 0, 1)
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}
	refs, err := parse.ParseShowRef(res.Lines)
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}
	return refs, nil
}
