// Command shazoom is the CLI front end for the fingerprinting pipeline:
// build a catalog from a directory of WAV songs, then query it against a
// recording, either a file, an interactive prompt, or a live microphone
// capture. Its command-tree shape follows zfogg-sidechain/cli's cobra
// usage from the retrieval pack; the teacher's own main/main.go instead
// hand-rolled an os.Args[1] switch, which this replaces with subcommands
// cobra derives --help and flag parsing from for free.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
