// Package build orchestrates one wrapped compiler invocation: parse the
// compile file, catalog and instrument its classes, write the generated
// copies under the build directory, rewrite the command, and run the real
// compiler forwarding its exit code.
package build

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"gcweave/internal/cache"
	"gcweave/internal/catalog"
	"gcweave/internal/config"
	"gcweave/internal/frontend"
	"gcweave/internal/lang"
	"gcweave/internal/patch"
)

// Orchestrator runs one compiler invocation end to end.
type Orchestrator struct {
	Cfg      *config.Config
	BuildDir string   // working directory of the invocation, absolute
	Args     []string // compiler arguments as received, without argv[0]
}

// Run executes the invocation and returns the process exit code to
// propagate. Compile commands over recognized sources are instrumented
// first; everything else (links, unknown languages) passes through
// untouched.
func (o *Orchestrator) Run(ctx context.Context) int {
	compileFile := CompileFile(o.Args)
	if compileFile == "" {
		slog.Debug("build.passthrough", "reason", "no compile step")
		return o.execute(ctx, o.Args)
	}
	spec := lang.ForExtension(filepath.Ext(compileFile))
	if spec == nil {
		slog.Debug("build.passthrough", "file", compileFile, "reason", "unrecognized language")
		return o.execute(ctx, o.Args)
	}

	mapping, err := o.instrument(compileFile, spec)
	if err != nil {
		slog.Error("build.instrument", "file", compileFile, "error", err)
		return 1
	}
	return o.execute(ctx, Substitute(o.Args, mapping))
}

// instrument parses the translation unit, patches every project file in
// it, and returns the original-to-generated path mapping for the command
// rewrite.
func (o *Orchestrator) instrument(compileFile string, spec *lang.Spec) (map[string]string, error) {
	unit, err := frontend.Parse(compileFile, ParseArgs(o.Args))
	if err != nil {
		return nil, err
	}
	defer unit.Close()
	if unit.Errors > 0 {
		slog.Warn("build.parse_errors", "file", compileFile, "count", unit.Errors)
	}

	cat := catalog.New()
	for _, f := range unit.Files {
		cat.Build(f.Tree.RootNode(), f.Source, f.Path, spec)
	}
	projectRoot := o.Cfg.EffectiveProjectRoot(o.BuildDir)
	records := catalog.FilterProject(cat.Records(), projectRoot)
	byFile := catalog.GroupByFile(records)
	slog.Debug("build.catalog", "classes", cat.Len(), "project", len(records), "files", len(unit.Files))

	gc := o.openCache()
	if gc != nil {
		defer gc.Close()
	}

	mapping := make(map[string]string, len(unit.Files))
	var entries []cache.Entry
	for _, f := range unit.Files {
		recs := byFile[f.Path]
		if len(recs) == 0 {
			continue
		}
		genPath, err := patch.GeneratedPath(o.BuildDir, projectRoot, f.Path)
		if err != nil {
			return nil, err
		}

		srcHash := cache.HashBytes(f.Source)
		if gc != nil {
			if got, ok := gc.Lookup(f.Path, srcHash); ok {
				slog.Debug("cache.hit", "file", f.Path)
				mapping[f.Path] = got
				continue
			}
		}

		groups := catalog.GroupByExtent(recs)
		patched, err := patch.File(f.Source, groups)
		if err != nil {
			return nil, err
		}
		if err := patch.Write(genPath, patched); err != nil {
			slog.Error("build.write", "path", genPath, "error", err)
			return nil, err
		}
		slog.Debug("build.patched", "file", f.Path, "generated", genPath, "classes", len(groups))

		mapping[f.Path] = genPath
		if gc != nil {
			entries = append(entries, cache.Entry{
				SourcePath:    f.Path,
				SourceHash:    srcHash,
				GeneratedPath: genPath,
			})
		}
	}

	if gc != nil && len(entries) > 0 {
		if err := gc.Record(entries); err != nil {
			slog.Warn("cache.record", "error", err)
		}
	}
	return mapping, nil
}

// openCache opens the generation cache when enabled. Cache failures never
// fail the build.
func (o *Orchestrator) openCache() *cache.Cache {
	if !o.Cfg.Cache.Enabled {
		return nil
	}
	path := o.Cfg.EffectiveCachePath(o.BuildDir)
	gc, err := cache.Open(path)
	if err != nil {
		slog.Warn("cache.open", "path", path, "error", err)
		return nil
	}
	return gc
}

// execute runs the real compiler with the given arguments, wiring through
// the standard streams, and returns its exit code.
func (o *Orchestrator) execute(ctx context.Context, args []string) int {
	compiler := o.Cfg.Compiler
	if compiler == "" {
		compiler = config.DefaultCompiler
	}
	slog.Debug("build.exec", "compiler", compiler, "args", args)

	cmd := exec.CommandContext(ctx, compiler, args...)
	cmd.Dir = o.BuildDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		slog.Error("build.exec", "compiler", compiler, "error", err)
		return 127
	}
	return 0
}
