package flags

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"go.senan.xyz/pathtag/metadata"
	"go.senan.xyz/pathtag/pathformat"
	"go.senan.xyz/pathtag/patternfile"
	"go.senan.xyz/pathtag/tagmap"
)

var _ flag.Value = (*pathFormatParser)(nil)
var _ flag.Value = (*tagWeightsParser)(nil)
var _ flag.Value = (*patternParser)(nil)
var _ flag.Value = (*patternFileParser)(nil)
var _ flag.Value = (*outputParser)(nil)

type pathFormatParser struct{ *pathformat.Format }

func (pf *pathFormatParser) Set(value string) error {
	return pf.Parse(value)
}
func (pf pathFormatParser) String() string {
	if pf.Format == nil || pf.Root() == "" {
		return ""
	}
	return fmt.Sprintf("%s/...", pf.Root())
}

type tagWeightsParser struct{ tagmap.TagWeights }

func (tw tagWeightsParser) Set(value string) error {
	const sep = " "
	i := strings.LastIndex(value, sep)
	if i < 0 {
		return fmt.Errorf("invalid tag weight format. expected eg \"tag name 0.5\"")
	}
	tag := strings.TrimSpace(value[:i])
	weightStr := strings.TrimSpace(value[i+len(sep):])
	weight, err := strconv.ParseFloat(weightStr, 64)
	if err != nil {
		return fmt.Errorf("parse weight: %w", err)
	}
	tw.TagWeights[tag] = weight
	return nil
}
func (tw tagWeightsParser) String() string {
	var parts []string
	for a, b := range tw.TagWeights {
		parts = append(parts, fmt.Sprintf("%s: %.2f", a, b))
	}
	return strings.Join(parts, ", ")
}

type patternParser struct{ *metadata.Registry }

func (p *patternParser) Set(value string) error {
	var compilation metadata.VAType
	if hint, expr, ok := strings.Cut(value, " "); ok {
		if vaType, ok := metadata.ParseVAType(hint); ok {
			compilation, value = vaType, strings.TrimSpace(expr)
		}
	}
	return p.AddString(value, compilation)
}
func (p patternParser) String() string {
	if p.Registry == nil {
		return ""
	}
	return fmt.Sprintf("%d patterns", p.Len())
}

type patternFileParser struct {
	*metadata.Registry
	paths []string
}

func (p *patternFileParser) Set(value string) error {
	pf, err := patternfile.Parse(value)
	if err != nil {
		return err
	}
	if err := pf.Apply(p.Registry); err != nil {
		return fmt.Errorf("%s: %w", value, err)
	}
	p.paths = append(p.paths, value)
	return nil
}
func (p patternFileParser) String() string {
	return strings.Join(p.paths, ", ")
}

type outputParser struct{ *Output }

func (o *outputParser) Set(value string) error {
	switch v := Output(value); v {
	case OutputText, OutputJSON:
		*o.Output = v
		return nil
	}
	return fmt.Errorf("unknown output format %q", value)
}
func (o outputParser) String() string {
	if o.Output == nil {
		return ""
	}
	return string(*o.Output)
}
