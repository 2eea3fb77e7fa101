package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Interactively query the catalog by typing WAV file paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrompt(cmd)
	},
}

func runPrompt(cmd *cobra.Command) error {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("shazoom prompt: enter a .wav path to identify it, or \"quit\" to exit.")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		data, err := os.ReadFile(line)
		if err != nil {
			color.Red("could not read %q: %v", line, err)
			continue
		}

		if err := runQuery(cmd.Context(), data); err != nil {
			color.Red("%v", err)
		}
	}
}
