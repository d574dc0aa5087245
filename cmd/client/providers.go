package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/chaptersafe/chaptersafe/pkg/rest/client"
	"github.com/google/subcommands"
)

type providersCmd struct {
	name    regexFlag
	verbose bool
}

func (*providersCmd) Name() string {
	return "providers"
}

func (*providersCmd) Synopsis() string {
	return "list allowed embed providers"
}

func (*providersCmd) Usage() string {
	return `providers [flags]:
	list embed providers and their iframe url prefixes
`
}

func (p *providersCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&p.name, "name", "only list providers with names matching this regexp")
	f.BoolVar(&p.verbose, "verbose", false, "include enforced iframe attributes")
}

func (p *providersCmd) Execute(
	ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// Setup rest client
	c, err := client.New(baseURL())
	if err != nil {
		return fatal("Couldn't build client", err)
	}

	providers, err := c.Providers(ctx)
	if err != nil {
		return fatal("REST call failed", err)
	}
	for _, pr := range providers {
		if p.name.Defined() && !p.name.MatchString(pr.Name) {
			continue
		}
		fmt.Printf("%-10s %s\n", pr.Name, pr.Prefix)
		if p.verbose {
			fmt.Printf("    allow=%q referrerpolicy=%q sandbox=%q allowfullscreen=%v\n",
				pr.Allow, pr.ReferrerPolicy, pr.Sandbox, pr.AllowFullscreen)
		}
	}

	return subcommands.ExitSuccess
}
