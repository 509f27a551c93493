package git

import (
	"context"
	"fmt"

	"github.com/thiagokokada/gitrepo/internal/git/command"
	"github.com/thiagokokada/gitrepo/internal/git/object"
	"github.com/thiagokokada/gitrepo/internal/git/parse"
)

// Tags lists tags resolved to the commits they point at. Shas come from a
// single show-ref call made after the listing.
func (r *Repository) Tags(ctx context.Context) ([]object.Tag, error) {
	res, err := r.run(ctx, command.TagList())
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	tags, err := parse.ParseTags(res.Lines)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	if len(tags) == 0 {
		return tags, nil
	}

	// show-ref exits 1 when there is nothing to show.
	res, err = r.run(ctx, command.ShowRefTags(), 0, 1)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}
	refs, err := parse.ParseShowRef(res.Lines)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}
	shas := parse.TagShas(refs)
	for i, tag := range tags {
		sha, ok := shas[tag.Name]
		if !ok {
			return nil, fmt.Errorf("resolve tag %s: %w", tag.Name, ErrNotFound)
		}
		tags[i] = tag.WithSha(sha)
	}
	return tags, nil
}

// Tag looks a tag up by name and resolves it to its commit.
func (r *Repository) Tag(ctx context.Context, name string) (object.Tag, bool, error) {
	tag, err := parse.ParseTagLine(name)
	if err != nil {
		return object.Tag{}, false, fmt.Errorf("%w: tag name %q", ErrInvalidInput, name)
	}
	verify, err := command.RevParse(tag.FullRef.String())
	if err != nil {
		return object.Tag{}, false, err
	}
	// rev-parse --verify --quiet exits 1 without output for a missing ref.
	res, err := r.run(ctx, verify, 0, 1)
	if err != nil {
		return object.Tag{}, false, fmt.Errorf("get tag %s: %w", name, err)
	}
	if res.ExitCode == 1 {
		return object.Tag{}, false, nil
	}

	cmd, err := command.RevListOne(tag.FullRef.String())
	if err != nil {
		return object.Tag{}, false, err
	}
	res, err = r.run(ctx, cmd)
	if err != nil {
		return object.Tag{}, false, fmt.Errorf("get tag %s: %w", name, classify(err))
	}
	sha, err := parse.ParseHash(res.Lines)
	if err != nil {
		return object.Tag{}, false, fmt.Errorf("get tag %s: %w", name, err)
	}
	return tag.WithSha(sha), true, nil
}

// CreateTag tags startPoint, HEAD when empty. A non-empty message makes an
// annotated tag.
func (r *Repository) CreateTag(ctx context.Context, name, startPoint, message string) (object.Tag, error) {
	cmd, err := command.CreateTag(name, startPoint, message)
	if err != nil {
		return object.Tag{}, err
	}
	if _, err := r.run(ctx, cmd); err != nil {
		return object.Tag{}, fmt.Errorf("create tag %s: %w", name, classify(err))
	}
	tag, ok, err := r.Tag(ctx, name)
	if err != nil {
		return object.Tag{}, err
	}
	if !ok {
		return object.Tag{}, fmt.Errorf("create tag %s: %w", name, ErrNotFound)
	}
	return tag, nil
}

func (r *Repository) DeleteTag(ctx context.Context, name string) error {
	cmd, err := command.DeleteTag(name)
	if err != nil {
		return err
	}
	if _, err := r.run(ctx, cmd); err != nil {
		return fmt.Errorf("delete tag %s: %w", name, classify(err))
	}
	return nil
}
