package flags

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.senan.xyz/flagconf"

	"go.senan.xyz/pathtag"
	"go.senan.xyz/pathtag/metadata"
	"go.senan.xyz/pathtag/pathformat"
	"go.senan.xyz/pathtag/tagmap"
)

// EnvPrefix sets the prefix of environment variables that fill in flags, so
// flag -path-format reads from PREFIX_PATH_FORMAT.
func EnvPrefix(prefix string) {
	flagconf.ReadEnvPrefix = func(_ *flag.FlagSet) string {
		return prefix
	}
}

func Parse() {
	userConfig, _ := os.UserConfigDir()
	defaultConfigPath := filepath.Join(userConfig, pathtag.Name, "config")
	configPath := flag.String("config-path", defaultConfigPath, "path config file")

	printVersion := flag.Bool("version", false, "print the version")
	printConfig := flag.Bool("config", false, "print the parsed config")

	flag.TextVar(&logLevel, "log-level", &logLevel, "set the logging level")
	flag.Var(&logFormat, "log-format", "log format, text or json")

	// command line, then env, then config file
	flag.Parse()
	flagconf.ParseConfig(*configPath)
	flagconf.ParseEnv()

	setLogger(os.Stderr, logFormat.format)

	if *printVersion {
		fmt.Printf("%s %s\n", flag.CommandLine.Name(), pathtag.Version)
		os.Exit(0)
	}
	if *printConfig {
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("%-16s %s\n", f.Name, f.Value)
		})
		os.Exit(0)
	}
}

// Registry is seeded with the standard templates. Templates from -pattern and
// -pattern-file are appended in the order they are given.
func Registry() *metadata.Registry {
	r := metadata.NewRegistry()
	flag.Var(&patternParser{r}, "pattern", `add a path template, a regexp with named groups, optionally prefixed with "va " or "ost "`)
	flag.Var(&patternFileParser{Registry: r}, "pattern-file", "add path templates from a yaml pattern file")
	return r
}

func PathFormat() *pathformat.Format {
	var r pathformat.Format
	if err := r.Parse(pathformat.Default); err != nil {
		panic(err)
	}
	flag.Var(&pathFormatParser{&r}, "path-format", "go templated path format to define music library layout")
	return &r
}

func TagWeights() tagmap.TagWeights {
	r := tagmap.TagWeights{}
	flag.Var(&tagWeightsParser{r}, "tag-weight", "adjust distance weighting for a tag between. 0 to ignore")
	return r
}

type Output string

const (
	OutputText Output = "text"
	OutputJSON Output = "json"
)

func OutputFormat() *Output {
	r := OutputText
	flag.Var(&outputParser{&r}, "output", "output format, text or json")
	return &r
}

func Workers() *int {
	return flag.Int("workers", runtime.NumCPU(), "number of files to inspect at once")
}
