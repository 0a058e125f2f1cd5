// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Command smt2 is a front end for running SMT-LIB v2 command scripts against
// an in-process reference Backend, printing one response per command.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apach301/bitwuzla/internal/refbackend"
	"github.com/apach301/bitwuzla/pkg/smt2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is filled when building with make, but *not* when installing via
// "go install".
var Version string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "smt2",
	Short: "A front end for SMT-LIB v2 command scripts.",
	Long: `smt2 reads an SMT-LIB v2 command script, checks and elaborates it
(symbols, sorts, terms) and drives the resulting assertions and queries
against a Backend solving capability, printing one SMT-LIB2 response per
command.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("smt2 ")

			if Version != "" {
				fmt.Print(Version)
			} else {
				fmt.Print("(unknown version)")
			}

			fmt.Println()

			return
		}

		fmt.Println(cmd.UsageString())
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}

func init() {
	rootCmd.Flags().Bool("version", false, "report the version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file|->",
	Short: "Run an SMT-LIB v2 script against the reference backend.",
	Long: `parse reads an SMT-LIB v2 command script from a file, or from
standard input when given "-", and runs it to completion, printing the
script's SMT-LIB2 responses.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		name := args[0]

		in, err := openInput(name)
		if err != nil {
			log.Fatalf("%s: %s", name, err)
		}
		defer in.Close()

		out, flush, err := openOutput(cmd)
		if err != nil {
			log.Fatalf("%s", err)
		}
		defer flush()

		reader := io.MultiReader(strings.NewReader(optionPrelude(cmd)), in)
		entry := log.WithField("file", name)
		driver := smt2.NewDriver(reader, out, name, refbackend.New, entry)

		if err := driver.Run(); err != nil {
			entry.Errorf("%s", err)
			os.Exit(1)
		}
	},
}

func init() {
	parseCmd.Flags().Bool("no-print-success", false, "disable the default :print-success true")
	parseCmd.Flags().Bool("global-declarations", false, "seed :global-declarations true")
	parseCmd.Flags().String("regular-output-channel", "", "write responses to this file instead of stdout")
}

// optionPrelude synthesises the "(set-option ...)" commands equivalent to
// the CLI's session-seeding flags, so the Driver never needs a bespoke
// pre-Run configuration path: it just sees a couple of extra commands ahead
// of the caller's own script.
func optionPrelude(cmd *cobra.Command) string {
	var sb strings.Builder

	if GetFlag(cmd, "no-print-success") {
		sb.WriteString("(set-option :print-success false)\n")
	}

	if GetFlag(cmd, "global-declarations") {
		sb.WriteString("(set-option :global-declarations true)\n")
	}

	return sb.String()
}

// openInput opens name for reading, treating "-" as standard input.
func openInput(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(name)
}

// openOutput opens the response sink named by --regular-output-channel, or
// standard output by default, returning a flush function the caller must
// defer.  When writing to a terminal, responses are written unbuffered so
// each one appears as soon as its command is processed; when piped to a
// file or another process, they are block-buffered and flushed once at
// exit, since there is no interactive reader waiting on a per-line basis.
func openOutput(cmd *cobra.Command) (io.Writer, func(), error) {
	channel := GetString(cmd, "regular-output-channel")

	if channel != "" {
		f, err := os.Create(channel)
		if err != nil {
			return nil, nil, err
		}

		bw := bufio.NewWriter(f)

		return bw, func() {
			bw.Flush()
			f.Close()
		}, nil
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		return os.Stdout, func() {}, nil
	}

	bw := bufio.NewWriter(os.Stdout)

	return bw, func() { bw.Flush() }, nil
}

// GetFlag reads an expected bool flag, or exits if it is missing.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString reads an expected string flag, or exits if it is missing.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}
