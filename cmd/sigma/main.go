// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command sigma evaluates YAML programs with the combinator library.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"code.hybscloud.com/sigma"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

func main() {
	configPath := flag.String("config", "", "TOML configuration file")
	format := flag.String("format", "text", "Output format: text or cbor")
	outDir := flag.String("o", ".", "Output directory for cbor snapshots")
	verbose := flag.Int("v", -1, "Log verbosity (overrides the configuration)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sigma [options] program.yaml...\n\n")
		fmt.Fprintf(os.Stderr, "Evaluates every expression of each program, one machine per file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  sigma prog.yaml                  # Print results\n")
		fmt.Fprintf(os.Stderr, "  sigma -format cbor -o out a.yaml # Write out/a.cbor\n")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if *format != "text" && *format != "cbor" {
		fmt.Fprintf(os.Stderr, "Unknown format %q\n", *format)
		os.Exit(2)
	}

	cfg := sigma.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = sigma.LoadConfig(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *verbose >= 0 {
		cfg.Log.Verbosity = *verbose
	}
	sigma.ConfigureLogging(cfg.Log)
	log := commonlog.GetLogger("sigma.cli")

	lib := sigma.Core()
	progs := make([]*sigma.Program, 0, flag.NArg())
	for _, path := range flag.Args() {
		p, err := sigma.LoadProgram(path, lib)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log.Debugf("loaded %s: %d expressions", path, len(p.Exprs))
		progs = append(progs, p)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := sigma.RunPrograms(ctx, cfg.Machine, progs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}

	for i, p := range progs {
		switch *format {
		case "text":
			for j, v := range results[i] {
				fmt.Printf("%s:%d: %s\n", p.Name, j+1, v)
			}
		case "cbor":
			if err := writeSnapshot(*outDir, p.Name, results[i]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				stop()
				os.Exit(1)
			}
		}
	}
}

// writeSnapshot stores the results of one program as a single CBOR array
// in dir/<name>.cbor.
func writeSnapshot(dir, name string, results []sigma.Item) error {
	data, err := sigma.MarshalItem(sigma.Arr(results...))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	path := filepath.Join(dir, base+".cbor")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}
