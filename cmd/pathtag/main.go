package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/sergi/go-diff/diffmatchpatch"
	"go.senan.xyz/table/table"

	"go.senan.xyz/pathtag"
	"go.senan.xyz/pathtag/cmd/internal/flags"
	"go.senan.xyz/pathtag/fileutil"
	"go.senan.xyz/pathtag/metadata"
	"go.senan.xyz/pathtag/pathformat"
	"go.senan.xyz/pathtag/tags"
)

func init() {
	flag := flag.CommandLine
	flag.Usage = func() {
		fmt.Fprintf(flag.Output(), "Usage:\n")
		fmt.Fprintf(flag.Output(), "  $ %s [<options>] parse    <path>...\n", flag.Name())
		fmt.Fprintf(flag.Output(), "  $ %s [<options>] full     <path>...\n", flag.Name())
		fmt.Fprintf(flag.Output(), "  $ %s [<options>] inspect  <path>...\n", flag.Name())
		fmt.Fprintf(flag.Output(), "  $ %s [<options>] format   <path>...\n", flag.Name())
		fmt.Fprintf(flag.Output(), "  $ %s [<options>] retag    <path>...\n", flag.Name())
		fmt.Fprintf(flag.Output(), "  $ %s [<options>] patterns\n", flag.Name())
		fmt.Fprintf(flag.Output(), "\n")
		fmt.Fprintf(flag.Output(), "Directories are walked for audio files.\n")
		fmt.Fprintf(flag.Output(), "\n")
		fmt.Fprintf(flag.Output(), "Options:\n")
		flag.PrintDefaults()
	}
}

var dmp = diffmatchpatch.New()

func main() {
	defer flags.ExitError()
	var (
		reg        = flags.Registry()
		pathFormat = flags.PathFormat()
		tagWeights = flags.TagWeights()
		output     = flags.OutputFormat()
		workers    = flags.Workers()
		readTags   = flag.Bool("tags", true, "read embedded tags when inspecting")
	)
	flags.EnvPrefix(pathtag.Name)
	flags.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	command := flag.Arg(0)
	args := flag.Args()
	if len(args) > 0 {
		args = args[1:]
	}

	if command == "patterns" {
		p := printer{w: os.Stdout, output: *output}
		if err := p.patterns(reg); err != nil {
			slog.Error("print patterns", "err", err)
		}
		return
	}

	switch command {
	case "parse", "full", "inspect", "format", "retag":
	default:
		flag.Usage()
		slog.Error("unknown command", "command", command)
		return
	}

	paths := expandPaths(args)
	if len(paths) == 0 {
		slog.Error("no paths provided")
		return
	}

	p := printer{w: os.Stdout, output: *output}

	switch command {
	case "parse":
		for _, path := range paths {
			md, ok := reg.FromPath(filepath.ToSlash(path))
			if !ok {
				slog.Warn("no match", "path", path)
				p.noMatch(path)
				continue
			}
			p.simple(path, md)
		}

	case "full":
		for _, path := range paths {
			full, ok := reg.FullFromPath(filepath.ToSlash(path))
			if !ok {
				slog.Warn("no match", "path", path)
				p.noMatch(path)
				continue
			}
			p.full(path, full)
		}

	case "format":
		for _, path := range paths {
			full, ok := reg.FullFromPath(filepath.ToSlash(path))
			if !ok {
				slog.Warn("no match", "path", path)
				p.noMatch(path)
				continue
			}
			dest, err := pathFormat.Execute(pathformat.NewData(full, filepath.Ext(path)))
			if err != nil {
				slog.Error("format path", "path", path, "err", err)
				continue
			}
			p.formatted(path, dest)
		}

	case "inspect":
		opts := pathtag.Options{ReadTags: *readTags, Weights: tagWeights}
		results, err := pathtag.InspectAll(ctx, reg, paths, opts, *workers)
		if err != nil {
			slog.Error("inspect", "err", err)
			return
		}
		for _, res := range results {
			if !res.Matched {
				slog.Warn("no match", "path", res.Path)
			}
			if res.TagsErr != nil {
				slog.Warn("read tags", "path", res.Path, "err", res.TagsErr)
			}
			p.inspected(res)
		}

	case "retag":
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				slog.Error("retag", "err", err)
				return
			}
			full, changed, err := pathtag.Retag(reg, path)
			if err != nil {
				slog.Error("retag", "path", path, "err", err)
				continue
			}
			slog.Debug("retagged", "path", path, "changed", changed)
			p.retagged(path, full, changed)
		}
	}
}

// expandPaths walks directories for audio files and keeps anything else as
// given, so paths that don't exist can still be parsed.
func expandPaths(args []string) []string {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = fileutil.WalkAudio(arg, tags.CanRead, func(path string) error {
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			slog.Error("walking paths", "dir", arg, "err", err)
		}
	}
	return paths
}

type printer struct {
	w      io.Writer
	output flags.Output
}

func (p printer) json(v any) {
	if err := json.NewEncoder(p.w).Encode(v); err != nil {
		slog.Error("encode", "err", err)
	}
}

func (p printer) rows(path string, rows [][2]string) {
	for _, r := range rows {
		fmt.Fprintf(p.w, "%s\t%s\t%s\n", path, r[0], r[1])
	}
}

func (p printer) noMatch(path string) {
	switch p.output {
	case flags.OutputJSON:
		p.json(struct {
			Path  string `json:"path"`
			Match bool   `json:"match"`
		}{path, false})
	default:
		fmt.Fprintf(p.w, "%s\tno match\n", path)
	}
}

func (p printer) simple(path string, md metadata.Simple) {
	switch p.output {
	case flags.OutputJSON:
		p.json(struct {
			Path  string `json:"path"`
			Match bool   `json:"match"`
			metadata.Simple
		}{path, true, md})
	default:
		p.rows(path, simpleRows(md))
	}
}

func (p printer) full(path string, full metadata.Full) {
	switch p.output {
	case flags.OutputJSON:
		p.json(full)
	default:
		p.rows(path, fullRows(full))
	}
}

func (p printer) formatted(path, dest string) {
	switch p.output {
	case flags.OutputJSON:
		p.json(struct {
			Path   string `json:"path"`
			Format string `json:"format"`
		}{path, dest})
	default:
		fmt.Fprintf(p.w, "%s\t%s\n", path, dest)
	}
}

func (p printer) retagged(path string, full metadata.Full, changed bool) {
	switch p.output {
	case flags.OutputJSON:
		p.json(struct {
			Path    string        `json:"path"`
			Changed bool          `json:"changed"`
			Full    metadata.Full `json:"full"`
		}{path, changed, full})
	default:
		status := "unchanged"
		if changed {
			status = "updated"
		}
		fmt.Fprintf(p.w, "%s\t%s\n", path, status)
	}
}

type inspectJSON struct {
	Path     string           `json:"path"`
	Match    bool             `json:"match"`
	FromPath *metadata.Full   `json:"fromPath,omitempty"`
	FromTags *metadata.Full   `json:"fromTags,omitempty"`
	TagsErr  string           `json:"tagsError,omitempty"`
	Score    *float64         `json:"score,omitempty"`
	Diffs    []inspectDiffRow `json:"diffs,omitempty"`
}

type inspectDiffRow struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
	Equal  bool   `json:"equal"`
}

func (p printer) inspected(res pathtag.Result) {
	switch p.output {
	case flags.OutputJSON:
		v := inspectJSON{Path: res.Path, Match: res.Matched, FromPath: res.FromPath, FromTags: res.FromTags}
		if res.TagsErr != nil {
			v.TagsErr = res.TagsErr.Error()
		}
		if res.Diffs != nil {
			v.Score = &res.Score
		}
		for _, d := range res.Diffs {
			v.Diffs = append(v.Diffs, inspectDiffRow{d.Field, dmp.DiffText1(d.Before), dmp.DiffText2(d.After), d.Equal})
		}
		p.json(v)
	default:
		// every row needs the same number of columns
		t := table.NewStringWriter()
		switch {
		case !res.Matched:
			fmt.Fprintf(t, "%s\tno match\t\n", res.Path)
		case res.Diffs == nil:
			fmt.Fprintf(t, "%s\tno tags\t\n", res.Path)
		default:
			fmt.Fprintf(t, "%s\t%.2f%%\t\n", res.Path, res.Score)
		}
		for _, d := range res.Diffs {
			mark := " "
			if !d.Equal {
				mark = "*"
			}
			fmt.Fprintf(t, "%s %s\t%s\t%s\n", mark, d.Field, fmtDiff(dmp.DiffText1(d.Before)), fmtDiff(dmp.DiffText2(d.After)))
		}
		fmt.Fprint(p.w, t.String())
	}
}

func (p printer) patterns(reg *metadata.Registry) error {
	switch p.output {
	case flags.OutputJSON:
		enc := json.NewEncoder(p.w)
		for i, pat := range reg.Patterns() {
			err := enc.Encode(struct {
				Index       int             `json:"index"`
				Compilation metadata.VAType `json:"compilation,omitempty"`
				Expr        string          `json:"expr"`
			}{i, pat.Compilation, pat.Expr.String()})
			if err != nil {
				return fmt.Errorf("encode pattern %d: %w", i, err)
			}
		}
	default:
		t := table.NewStringWriter()
		for i, pat := range reg.Patterns() {
			fmt.Fprintf(t, "%d\t%s\t%s\n", i, fmtDiff(string(pat.Compilation)), pat.Expr)
		}
		if _, err := io.WriteString(p.w, t.String()); err != nil {
			return fmt.Errorf("write patterns: %w", err)
		}
	}
	return nil
}

func simpleRows(md metadata.Simple) [][2]string {
	var rows [][2]string
	add := func(k, v string) {
		if v != "" {
			rows = append(rows, [2]string{k, v})
		}
	}
	add(metadata.AttrArtist, md.Artist)
	add(metadata.AttrAlbum, md.Album)
	add(metadata.AttrYear, md.Year)
	add(metadata.AttrTrack, md.Track)
	add(metadata.AttrTitle, md.Title)
	add(metadata.AttrDiscNum, md.DiscNum)
	add(metadata.AttrDiscName, md.DiscName)
	add(metadata.AttrCompilation, string(md.Compilation))
	return rows
}

func fullRows(f metadata.Full) [][2]string {
	var rows [][2]string
	add := func(k string, vs ...string) {
		for _, v := range vs {
			rows = append(rows, [2]string{k, v})
		}
	}
	add("artist", f.Artist...)
	add("album", f.Album)
	if f.Year != nil {
		add("year", strconv.Itoa(*f.Year))
	}
	add("track", strconv.Itoa(f.Track))
	add("title", f.Title)
	if f.Disk != nil {
		add("disk", strconv.Itoa(*f.Disk))
	}
	if f.DiskName != "" {
		add("diskName", f.DiskName)
	}
	if f.VAType != "" {
		add("vaType", string(f.VAType))
	}
	add("moreArtists", f.MoreArtists...)
	add("variations", f.Variations...)
	return rows
}

func fmtDiff(s string) string {
	if s != "" {
		return s
	}
	return "[empty]"
}
