package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zeebo/clingy"

	"loov.dev/tracestats/category"
	"loov.dev/tracestats/stats"
)

type cmdCategories struct {
	labels bool
}

func (c *cmdCategories) Setup(params clingy.Parameters) {
	c.labels = params.Flag("labels", "print the summary labels instead", false,
		clingy.Transform(strconv.ParseBool), clingy.Boolean,
	).(bool)
}

func (c *cmdCategories) Execute(ctx clingy.Context) error {
	stdout := ctx.Stdout()
	if c.labels {
		for _, label := range category.Labels {
			fmt.Fprintln(stdout, label)
		}
		return nil
	}
	_, err := fmt.Fprintln(stdout, strings.Join(stats.TraceCategories, ","))
	return err
}
