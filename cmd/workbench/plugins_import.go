package main

// Blank imports ensure plugin init() registration runs for the CLI binary.
import (
	_ "github.com/alexisbeaulieu97/workbench/internal/plugins/counter"
	_ "github.com/alexisbeaulieu97/workbench/internal/plugins/formatter"
	_ "github.com/alexisbeaulieu97/workbench/internal/plugins/renamer"
)
