package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		window     int
		length     int
		pruneMin   int
		random     bool
		seed       uint64
		text       string
		file       string
		corpusName string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Train a model and extend a seed text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyIntConfig(cmd, "window", &window, a.config.Model.WindowLength)
			applyIntConfig(cmd, "length", &length, a.config.Model.Length)
			applyIntConfig(cmd, "prune", &pruneMin, a.config.Model.PruneMin)
			applyBoolConfig(cmd, "random", &random, a.config.Model.Random)
			applyUintConfig(cmd, "seed", &seed, a.config.Model.Seed)

			m, err := a.buildModel(cmd.Context(), window, random, seed, modelSource{file: file, corpusName: corpusName}, pruneMin)
			if err != nil {
				return err
			}
			return a.writeOutput(cmd, out, m.Generate(text, length))
		},
	}

	cmd.Flags().IntVarP(&window, "window", "w", 0, "window length in characters")
	cmd.Flags().IntVarP(&length, "length", "n", 0, "number of characters to generate")
	cmd.Flags().IntVar(&pruneMin, "prune", 0, "drop transitions seen at most this many times")
	cmd.Flags().BoolVar(&random, "random", false, "draw a fresh random seed instead of --seed")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "sampling seed for reproducible output")
	cmd.Flags().StringVarP(&text, "text", "t", "", "initial text to extend")
	cmd.Flags().StringVarP(&file, "file", "f", "", "corpus file to train on")
	cmd.Flags().StringVarP(&corpusName, "corpus", "c", "", "stored corpus to train on")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the result, newline-terminated, to this file instead of stdout")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

// newRunCmd accepts the classic positional form:
// run <windowLength> <initialText> <length> <random|fixed> <file>
func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <windowLength> <initialText> <length> <random|fixed> <file>",
		Short: "Train on a file and generate text from positional arguments",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			windowLength, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid window length %q: %w", args[0], err)
			}
			length, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid length %q: %w", args[2], err)
			}

			var random bool
			switch strings.ToLower(args[3]) {
			case "random":
				random = true
			case "fixed":
				random = false
			default:
				return fmt.Errorf("invalid generation mode %q: want random or fixed", args[3])
			}

			m, err := a.buildModel(cmd.Context(), windowLength, random, fixedSeed, modelSource{file: args[4]}, 0)
			if err != nil {
				return err
			}
			return a.writeOutput(cmd, "", m.Generate(args[1], length))
		},
	}
}
