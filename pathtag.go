// Package pathtag inspects music files, comparing the metadata their paths
// imply with the metadata their tags carry.
package pathtag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"go.senan.xyz/pathtag/metadata"
	"go.senan.xyz/pathtag/tagmap"
	"go.senan.xyz/pathtag/tags"
)

var ErrNoMatch = errors.New("no template matches path")

type Options struct {
	// ReadTags also reads and compares the embedded tags of each file.
	ReadTags bool
	Weights  tagmap.TagWeights

	// ReadFunc reads the tags of a file. Defaults to [tags.ReadTags].
	ReadFunc func(path string) (tags.Tags, error)
}

type Result struct {
	Path     string
	Matched  bool
	Simple   metadata.Simple
	FromPath *metadata.Full

	FromTags *metadata.Full
	TagsErr  error
	Score    float64
	Diffs    []tagmap.Diff
}

// Inspect parses path with reg, and with opts.ReadTags reads the file's tags
// too. A path no template matches is a result with Matched false. Failing to
// read tags is recorded in TagsErr.
func Inspect(ctx context.Context, reg *metadata.Registry, path string, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res := Result{Path: path}
	if md, ok := reg.FromPath(filepath.ToSlash(path)); ok {
		res.Matched = true
		res.Simple = md
		if full, ok := metadata.FullFromObj(path, md.Attributes()); ok {
			res.FromPath = &full
		}
	}

	if !opts.ReadTags {
		return res, nil
	}

	read := opts.ReadFunc
	if read == nil {
		read = tags.ReadTags
	}
	t, err := read(path)
	if err != nil {
		slog.DebugContext(ctx, "read tags", "path", path, "err", err)
		res.TagsErr = fmt.Errorf("read tags: %w", err)
		return res, nil
	}
	full, ok := tagmap.Full(path, t)
	if !ok {
		slog.DebugContext(ctx, "tags incomplete", "path", path, "num_tags", t.Len())
		return res, nil
	}
	res.FromTags = &full

	if res.FromPath != nil {
		res.Score, res.Diffs = tagmap.DiffFull(opts.Weights, *res.FromPath, *res.FromTags)
	}
	return res, nil
}

// InspectAll inspects paths with up to workers at once, runtime.NumCPU() if
// workers is zero. Results are in the order of paths.
func InspectAll(ctx context.Context, reg *metadata.Registry, paths []string, opts Options, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]Result, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			res, err := Inspect(ctx, reg, path, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Retag writes the metadata path implies into its tags, keeping any other
// tags already there. It reports whether the tags changed.
func Retag(reg *metadata.Registry, path string) (metadata.Full, bool, error) {
	full, ok := reg.FullFromPath(filepath.ToSlash(path))
	if !ok {
		return metadata.Full{}, false, ErrNoMatch
	}

	prev, err := tags.ReadTags(path)
	if err != nil {
		return metadata.Full{}, false, fmt.Errorf("read tags: %w", err)
	}

	var next tags.Tags
	for k, vs := range prev.Iter() {
		next.Set(k, vs...)
	}
	tagmap.WriteFull(&next, full)

	if tags.Equal(prev, next) {
		return full, false, nil
	}
	if err := tags.ReplaceTags(path, next); err != nil {
		return metadata.Full{}, false, fmt.Errorf("write tags: %w", err)
	}
	return full, true, nil
}
