package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"gcweave/internal/build"
	"gcweave/internal/config"
	"gcweave/internal/lang"
	"gcweave/internal/parser"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Println("gcweave", version)
		os.Exit(0)
	}

	buildDir, err := os.Getwd()
	if err != nil {
		log.Fatalf("getwd err=%v", err)
	}
	cfg := config.Resolve(buildDir)

	level := slog.LevelWarn
	if cfg.EffectiveVerbose() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if _, err := parser.GetLanguage(lang.CPP); err != nil {
		log.Fatalf("grammar err=%v", err)
	}

	o := &build.Orchestrator{
		Cfg:      cfg,
		BuildDir: buildDir,
		Args:     os.Args[1:],
	}
	os.Exit(o.Run(context.Background()))
}
