package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stemsi/chemistry-web/internal/config"
	"github.com/stemsi/chemistry-web/internal/logger"
	"golang.org/x/term"
)

// cli carries what every subcommand shares; setup fills it before any
// command runs.
type cli struct {
	verbose bool
	cfg     *config.Config
	log     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	app := &cli{}

	root := &cobra.Command{
		Use:   "chemctl",
		Short: "Chemistry Web from the terminal",
		Long: `chemctl drives the Chemistry Web services without a browser: take a
quiz, look up elements, try the equation balancer, browse the library and
watch the fact rotation.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.setup(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newQuizCmd(app),
		newElementCmd(),
		newBalanceCmd(),
		newLibraryCmd(app),
		newFactsCmd(app),
		newVersionCmd(),
	)
	return root
}

func (a *cli) setup(w io.Writer) {
	a.cfg = config.Load()
	level := "warn"
	if a.verbose {
		level = "debug"
	}
	a.log = logger.New(w, level, "pretty")
}

// interactive reports whether stdin is a terminal the prompts can drive.
func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
