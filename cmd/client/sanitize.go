package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/chaptersafe/chaptersafe/pkg/rest/client"
	"github.com/chaptersafe/chaptersafe/pkg/sanitize"
	"github.com/google/subcommands"
)

type sanitizeCmd struct {
	local  bool
	report bool
}

func (*sanitizeCmd) Name() string {
	return "sanitize"
}

func (*sanitizeCmd) Synopsis() string {
	return "sanitize chapter html"
}

func (*sanitizeCmd) Usage() string {
	return `sanitize [flags] <file|->:
	print sanitized html for file, or stdin when file is -
`
}

func (s *sanitizeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&s.local, "local", false, "sanitize in process instead of calling the server")
	f.BoolVar(&s.report, "report", false, "print the removal report to stderr")
}

func (s *sanitizeCmd) Execute(
	ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := f.Arg(0)
	if name == "" {
		return usage("file required")
	}
	input, err := readInput(name)
	if err != nil {
		return fatal("Couldn't read input", err)
	}

	if s.local {
		out, report := sanitize.HTMLWithReport(input)
		if report.Failed {
			return fatal("Sanitize failed", errors.New("content rejected"))
		}
		fmt.Println(out)
		if s.report {
			fmt.Fprintf(os.Stderr, "%+v removed=%v\n", report, report.Removed())
		}
		return subcommands.ExitSuccess
	}

	// Setup rest client
	c, err := client.New(baseURL())
	if err != nil {
		return fatal("Couldn't build client", err)
	}
	resp, err := c.Sanitize(ctx, input)
	if err != nil {
		return fatal("REST call failed", err)
	}
	fmt.Println(resp.HTML)
	if s.report && resp.Report != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", *resp.Report)
	}

	return subcommands.ExitSuccess
}
