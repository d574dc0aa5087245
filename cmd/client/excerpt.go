package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/chaptersafe/chaptersafe/pkg/rest/client"
	"github.com/google/subcommands"
)

type excerptCmd struct {
	limit int
}

func (*excerptCmd) Name() string {
	return "excerpt"
}

func (*excerptCmd) Synopsis() string {
	return "print a bounded plain text excerpt of chapter html"
}

func (*excerptCmd) Usage() string {
	return `excerpt [flags] <file|->:
	print plain text excerpt of file, or stdin when file is -
`
}

func (e *excerptCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&e.limit, "limit", 0, "maximum excerpt length in characters, 0 for server default")
}

func (e *excerptCmd) Execute(
	ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := f.Arg(0)
	if name == "" {
		return usage("file required")
	}
	if e.limit < 0 {
		return usage("limit must not be negative")
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
	resp, err := c.Excerpt(ctx, input, e.limit)
	if err != nil {
		return fatal("REST call failed", err)
	}
	fmt.Println(resp.Text)

	return subcommands.ExitSuccess
}
