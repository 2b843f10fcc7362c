// spritestrip — Concatenate images left to right into a single strip.
//
// Usage:
//
//	spritestrip output.png input1.png input2.png ...
//
// Frames are top-aligned on a transparent RGBA canvas as tall as the
// tallest input. The output format follows the output file extension.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xob0t/spritestrip/pkg/codec"
	"github.com/xob0t/spritestrip/pkg/strip"
)

func main() {
	log := newLogger(os.Stderr)
	strip.SetLogger(log)
	codec.SetLogger(log)

	program := filepath.Base(os.Args[0])
	code := run(program, os.Args[1:], codec.New(), os.Stdout, os.Stderr)
	_ = log.Sync()
	os.Exit(code)
}

// run executes one invocation and returns the process exit status.
func run(program string, args []string, c strip.Codec, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args on a nil slice.
		args = []string{}
	}
	cmd := newRootCmd(program, c)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		var usage *strip.UsageError
		if errors.As(err, &usage) {
			fmt.Fprintln(stderr, strip.Usage(program))
			return 1
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(program string, c strip.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   program + " output.png input1.png input2.png ...",
		Short: "Concatenate images left to right into a single strip",
		Long: `Decodes every input in order, places them side by side on a transparent
RGBA canvas (top-aligned, as tall as the tallest input) and writes the
result. The output format is chosen by the output file extension.`,
		Args: func(cmd *cobra.Command, args []string) error {
			_, _, err := strip.ValidateArgs(args)
			return err
		},
		// Paths are taken verbatim, even ones that begin with "-".
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, inputs, err := strip.ValidateArgs(args)
			if err != nil {
				return err
			}
			res, err := strip.New(c).Compose(inputs, output)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

// newLogger writes warnings and errors to w in console format; debug
// records from the strip and codec packages are dropped.
func newLogger(w io.Writer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.WarnLevel)
	return zap.New(core)
}
