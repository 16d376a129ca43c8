package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/miruken-go/delegate/internal/gen"
	"github.com/miruken-go/delegate/logs"
	"github.com/spf13/cobra"
	"golang.org/x/tools/go/packages"
)

type options struct {
	pattern   string
	output    string
	ifaces    []string
	verbosity int
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "delegategen",
		Short: "Generate forwarding types dispatching interfaces to a delegate chain",
		Args:  cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.pattern, "pkg", "p", ".", "package pattern declaring the interfaces")
	flags.StringSliceVarP(&opts.ifaces, "iface", "i", nil, "interfaces to generate forwarding types for")
	flags.StringVarP(&opts.output, "output", "o", "-", "output file or - for stdout")
	flags.IntVarP(&opts.verbosity, "verbosity", "v", 0, "log verbosity")
	_ = cmd.MarkFlagRequired("iface")
	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	logger := logs.Writer(cmd.ErrOrStderr(), opts.verbosity)

	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedTypes,
	}, opts.pattern)
	if err != nil {
		return fmt.Errorf("delegategen: %w", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return errors.New("delegategen: package has errors")
	}
	if len(pkgs) != 1 {
		return fmt.Errorf("delegategen: pattern %q matched %d packages", opts.pattern, len(pkgs))
	}
	pkg := pkgs[0]
	logger.V(1).Info("loaded", "package", pkg.PkgPath, "interfaces", opts.ifaces)

	src, err := gen.Generate(pkg.Types, opts.ifaces...)
	if err != nil {
		return err
	}
	if opts.output == "-" {
		_, err = cmd.OutOrStdout().Write(src)
		return err
	}
	if err = os.WriteFile(opts.output, src, 0o644); err != nil {
		return fmt.Errorf("delegategen: %w", err)
	}
	logger.Info("generated", "file", opts.output, "interfaces", opts.ifaces)
	return nil
}
