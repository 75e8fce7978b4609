package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	zerofs "github.com/zerofs-dev/zerofs"
	"github.com/zerofs-dev/zerofs/config"
	"github.com/zerofs-dev/zerofs/pathsvc"
)

// errUsage reports a wrong-argument-count error for a subcommand.
func errUsage(command *cobra.Command) error {
	return errors.Errorf("invalid arguments, see '%s --help'", command.CommandPath())
}

// openFileSystem loads a Configuration from rootConfiguration.config (or
// Default() if unset) and constructs a FileSystem. Every subcommand opens
// its own short-lived instance and closes it before returning, since
// zerofsctl is a one-shot CLI rather than a long-running daemon.
func openFileSystem() (*zerofs.FileSystem, *config.Configuration, error) {
	var cfg *config.Configuration
	var err error
	if rootConfiguration.config != "" {
		cfg, err = config.Load(rootConfiguration.config)
	} else {
		cfg = config.Default()
	}
	if err != nil {
		return nil, nil, err
	}
	fs, err := zerofs.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return fs, cfg, nil
}

// resolvePath parses a command-line path argument using fs's configured
// path grammar.
func resolvePath(fs *zerofs.FileSystem, raw string) (pathsvc.Path, error) {
	p, err := fs.ParsePath(raw)
	if err != nil {
		return pathsvc.Path{}, errors.Wrapf(err, "invalid path %q", raw)
	}
	return p, nil
}
