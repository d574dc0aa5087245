package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/chaptersafe/chaptersafe/pkg/rest/client"
	"github.com/google/subcommands"
)

type speechCmd struct {
	size int
}

func (*speechCmd) Name() string {
	return "speech"
}

func (*speechCmd) Synopsis() string {
	return "convert chapter html to narration chunks"
}

func (*speechCmd) Usage() string {
	return `speech [flags] <file|->:
	print narration text chunks, separated by blank lines
`
}

func (s *speechCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&s.size, "size", 0, "maximum chunk size in characters, 0 for server default")
}

func (s *speechCmd) Execute(
	ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := f.Arg(0)
	if name == "" {
		return usage("file required")
	}
	if s.size < 0 {
		return usage("size must not be negative")
	}
	input, err := readInput(name)
	if err != nil {
		return fatal("Couldn't read input", err)
	}

	// Setup rest client
	c, err := client.New(baseURL())
	if err != nil {
		return fatal("Couldn't build client", err)
	}
	resp, err := c.Speech(ctx, input, s.size)
	if err != nil {
		return fatal("REST call failed", err)
	}
	for i, chunk := range resp.Chunks {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(chunk)
	}

	return subcommands.ExitSuccess
}
