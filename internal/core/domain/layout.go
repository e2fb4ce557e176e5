package domain

import "time"

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "spawn.yaml"

	// DefaultOutdirName is the output directory used when neither outdir nor outfile is set.
	DefaultOutdirName = "dist"

	// DefaultFormat is the format of the main build.
	DefaultFormat = "esm"

	// DefaultPlatform is the platform of the main build.
	DefaultPlatform = "browser"

	// DefaultDebounce is the quiet period the watch loop waits for before rebuilding.
	DefaultDebounce = 50 * time.Millisecond

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
