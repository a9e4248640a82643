/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

// Package commands wires the CLI surface: cobra/pflag for option
// parsing, viper for environment binding, onto the core C1-C5 engine
// packages.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cbuildtools/pcresolve/cmd"
	"github.com/cbuildtools/pcresolve/cmd/aggregator"
	"github.com/cbuildtools/pcresolve/cmd/browse"
	"github.com/cbuildtools/pcresolve/cmd/errors"
	"github.com/cbuildtools/pcresolve/cmd/registry"
	"github.com/cbuildtools/pcresolve/cmd/requirement"
	"github.com/cbuildtools/pcresolve/cmd/resolver"
	"github.com/cbuildtools/pcresolve/cmd/utils"
	"github.com/cbuildtools/pcresolve/cmd/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	viperType "github.com/spf13/viper"
)

var viper *viperType.Viper

type flagSet struct {
	printVersion bool
	modversion   bool

	cflags           bool
	cflagsOnlyI      bool
	cflagsOnlyOther  bool
	libs             bool
	libsOnlyL        bool
	libsOnlyCapitalL bool
	libsOnlyOther    bool
	variable         string
	listAll          bool

	exists                bool
	uninstalled           bool
	atleastVersion        string
	exactVersion          string
	maxVersion            string
	atleastPkgconfVersion string

	printErrors    bool
	silenceErrors  bool
	errorsToStdout bool
	debug          bool

	defineVariable []string

	dontDefinePrefix bool
	prefixVariable   string
	msvcSyntax       bool

	static bool
}

var flags flagSet

// NewCli builds pcresolve's root command: zero or more module-name
// positional arguments plus the query/predicate/option flags of §6.
func NewCli() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pcresolve [modules...] [flags]",
		Short:         "Resolve compile and link flags for installed modules",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	viper = viperType.New()
	bindFlags(rootCmd.Flags())

	browse.BuildRegistry = buildRegistry
	rootCmd.AddCommand(browse.Cmd)
	return rootCmd
}

func bindFlags(f *pflag.FlagSet) {
	f.BoolVar(&flags.printVersion, "version", false, "Print pcresolve's own version and exit")
	f.BoolVar(&flags.modversion, "modversion", false, "Print each requested module's version, one per line")

	f.BoolVar(&flags.cflags, "cflags", false, "Print preprocessor and compiler flags")
	f.BoolVar(&flags.cflagsOnlyI, "cflags-only-I", false, "Print only -I flags")
	f.BoolVar(&flags.cflagsOnlyOther, "cflags-only-other", false, "Print only non--I compiler flags")
	f.BoolVar(&flags.libs, "libs", false, "Print linker flags")
	f.BoolVar(&flags.libsOnlyL, "libs-only-l", false, "Print only -l flags")
	f.BoolVar(&flags.libsOnlyCapitalL, "libs-only-L", false, "Print only -L flags")
	f.BoolVar(&flags.libsOnlyOther, "libs-only-other", false, "Print only non--l/-L linker flags")
	f.StringVar(&flags.variable, "variable", "", "Print the value of variable NAME from the first requested module")
	f.BoolVar(&flags.listAll, "list-all", false, "List every module found on the search path")

	f.BoolVar(&flags.exists, "exists", false, "Exit 0 if every requested module is found")
	f.BoolVar(&flags.uninstalled, "uninstalled", false, "Exit 0 if any requested module was loaded from an uninstalled variant")
	f.StringVar(&flags.atleastVersion, "atleast-version", "", "Exit 0 if the module's version is at least V")
	f.StringVar(&flags.exactVersion, "exact-version", "", "Exit 0 if the module's version is exactly V")
	f.StringVar(&flags.maxVersion, "max-version", "", "Exit 0 if the module's version is at most V")
	f.StringVar(&flags.atleastPkgconfVersion, "atleast-pkgconfig-version", "", "Exit 0 if pcresolve's own version is at least V")

	f.BoolVar(&flags.printErrors, "print-errors", false, "Show error messages for queries that are silent by default (--exists, version predicates)")
	f.BoolVar(&flags.silenceErrors, "silence-errors", false, "Hide error messages for printing queries unless debug output is on")
	f.BoolVar(&flags.errorsToStdout, "errors-to-stdout", false, "Print error messages to stdout instead of stderr")
	f.BoolVar(&flags.debug, "debug", false, "Enable debug logging")

	f.StringArrayVar(&flags.defineVariable, "define-variable", nil, "Define NAME=VALUE in the global variable environment (repeatable)")

	f.BoolVar(&flags.dontDefinePrefix, "dont-define-prefix", false, "Disable the per-package prefix override")
	f.StringVar(&flags.prefixVariable, "prefix-variable", "prefix", "Name of the variable the prefix override rewrites")
	f.BoolVar(&flags.msvcSyntax, "msvc-syntax", false, "Emit -lfoo/-Ldir as foo.lib//libpath:dir")
	f.BoolVar(&flags.static, "static", false, "Include Requires.private/Libs.private in the closure")

	_ = viper.BindPFlag("debug", f.Lookup("debug"))
	_ = viper.BindEnv("debug", "PKGCONF_DEBUG_SPEW")
	_ = viper.BindEnv("path", "PKGCONF_PATH")
	_ = viper.BindEnv("top-build-dir", "PKGCONF_TOP_BUILD_DIR")
	_ = viper.BindEnv("disable-uninstalled", "PKGCONF_DISABLE_UNINSTALLED")
}

// isPrintingQuery reports whether any "printing" query flag was given,
// which governs the default error-verbosity policy of §4.5/§7.
func (f flagSet) isPrintingQuery() bool {
	return f.printVersion || f.modversion || f.cflags || f.cflagsOnlyI || f.cflagsOnlyOther ||
		f.libs || f.libsOnlyL || f.libsOnlyCapitalL || f.libsOnlyOther || f.variable != "" || f.listAll
}

func configureLogging() {
	log.SetFormatter(&cmd.PrefixFormatter{})
	log.SetOutput(os.Stderr)

	debug := flags.debug || viper.GetBool("debug")
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	if flags.errorsToStdout {
		log.SetOutput(os.Stdout)
	}
}

// verboseErrors applies the §4.5/§7 state machine: printing queries
// default to verbose, predicate queries default to silent, unless
// overridden by --print-errors/--silence-errors, with the debug env var
// taking precedence over --silence-errors.
func verboseErrors() bool {
	debugForced := viper.GetBool("debug")

	if flags.isPrintingQuery() {
		if flags.silenceErrors && !debugForced {
			return false
		}
		return true
	}

	return flags.printErrors
}

// ReportError logs err at the effective verbosity level (§4.5/§7) unless
// it has already been logged by the operation that produced it. main
// calls this on whatever error NewCli's command returns, so every
// exit path is logged exactly once.
func ReportError(err error) {
	if errors.AlreadyLogged(err) {
		return
	}
	if verboseErrors() {
		log.Error(err.Error())
	}
}

func buildRegistry() *registry.Registry {
	global := registry.NewGlobalEnv(viper.GetString("top-build-dir"))
	for _, def := range flags.defineVariable {
		name, value, ok := strings.Cut(def, "=")
		if !ok {
			continue
		}
		global.Define(name, value)
	}

	searchDirs := registry.BuildSearchPath(nil, "PKGCONF_PATH")

	r := registry.New(searchDirs, global)
	r.DisableUninstalled = viper.GetBool("disable-uninstalled")
	r.RewritePrefix = !flags.dontDefinePrefix
	r.PrefixVariable = flags.prefixVariable
	r.ShowProgress = utils.IsTerminalInteractive()
	return r
}

func run(cmd *cobra.Command, args []string) error {
	configureLogging()

	if flags.printVersion {
		fmt.Fprintln(cmd.OutOrStdout(), version.ToolVersion)
		return nil
	}

	if flags.atleastPkgconfVersion != "" {
		if version.AtLeastToolVersion(flags.atleastPkgconfVersion) {
			return nil
		}
		return errors.ErrVersionMismatch
	}

	if flags.listAll {
		return runListAll(cmd)
	}

	for _, name := range args {
		if !utils.IsModuleNameValid(name) && !strings.HasSuffix(name, ".pc") {
			return fmt.Errorf("%w: %q", errors.ErrBadModuleName, name)
		}
	}

	r := buildRegistry()

	seed := make([]requirement.RequiredVersion, 0, len(args))
	for _, name := range args {
		seed = append(seed, requirement.RequiredVersion{Name: name, Comparison: version.AlwaysMatch})
	}

	if flags.exists || flags.uninstalled || flags.atleastVersion != "" || flags.exactVersion != "" || flags.maxVersion != "" {
		return runPredicate(r, args)
	}

	res, err := resolver.Resolve(seed, r)
	if err != nil {
		ReportError(err)
		return errors.ErrAlreadyLogged
	}

	return runQuery(cmd, res, r.Global, args)
}

func runPredicate(r *registry.Registry, names []string) error {
	anyUninstalled := false
	for _, name := range names {
		pkg, err := r.Load(name)
		if err != nil {
			ReportError(err)
			return errors.ErrAlreadyLogged
		}
		if err := pkg.Validate(); err != nil {
			ReportError(err)
			return errors.ErrAlreadyLogged
		}

		if pkg.Uninstalled {
			anyUninstalled = true
		}

		for _, check := range []struct {
			cmp version.Comparison
			v   string
		}{
			{version.GreaterEqual, flags.atleastVersion},
			{version.Equal, flags.exactVersion},
			{version.LessEqual, flags.maxVersion},
		} {
			if check.v == "" {
				continue
			}
			if !version.Test(check.cmp, pkg.Version, check.v) {
				msg := fmt.Sprintf("Requested '%s %s %s' but version of %s is %s", name, check.cmp, check.v, name, pkg.Version)
				err := fmt.Errorf("%w: %s", errors.ErrVersionMismatch, msg)
				ReportError(err)
				return errors.ErrAlreadyLogged
			}
		}
	}
	if flags.uninstalled && !anyUninstalled {
		return errors.ErrVersionMismatch
	}
	return nil
}

func runQuery(cmd *cobra.Command, res *resolver.Result, global map[string]string, requested []string) error {
	out := cmd.OutOrStdout()

	if flags.modversion {
		want := map[string]bool{}
		for _, name := range requested {
			want[name] = true
		}
		for _, pkg := range res.Packages {
			if want[pkg.Key] {
				fmt.Fprintln(out, pkg.Version)
			}
		}
		return nil
	}

	if flags.variable != "" {
		v, _ := aggregator.Variable(res, flags.variable, global)
		fmt.Fprintln(out, v)
		return nil
	}

	opt := aggregator.Options{Static: flags.static, MSVCSyntax: flags.msvcSyntax}

	switch {
	case flags.cflagsOnlyI:
		printLine(out, aggregator.Render(res, aggregator.KindCflagsOnlyInclude, opt))
	case flags.cflagsOnlyOther:
		printLine(out, aggregator.Render(res, aggregator.KindCflagsOnlyOther, opt))
	case flags.cflags:
		printLine(out, aggregator.Render(res, aggregator.KindCflags, opt))
	case flags.libsOnlyL:
		printLine(out, aggregator.Render(res, aggregator.KindLibsOnlyL, opt))
	case flags.libsOnlyCapitalL:
		printLine(out, aggregator.Render(res, aggregator.KindLibsOnlyDir, opt))
	case flags.libsOnlyOther:
		printLine(out, aggregator.Render(res, aggregator.KindLibsOnlyOther, opt))
	case flags.libs:
		printLine(out, aggregator.Render(res, aggregator.KindLibs, opt))
	}

	return nil
}

func printLine(out io.Writer, line string) {
	if line == "" {
		return
	}
	fmt.Fprintln(out, line)
}

func runListAll(cmd *cobra.Command) error {
	r := buildRegistry()
	entries, err := r.ListAll()
	if err != nil {
		ReportError(err)
		return errors.ErrAlreadyLogged
	}

	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%-30s %s\n", e.Name, e.Description)
	}
	return nil
}
