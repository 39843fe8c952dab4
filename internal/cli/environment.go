package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gophpfix/internal/configloader"
)

// newEnvironmentTopic builds the "gophpfix help environment" topic. It has
// no Run function, so cobra treats it as an additional help topic.
func newEnvironmentTopic() *cobra.Command {
	return &cobra.Command{
		Use:   "environment",
		Short: "Environment variables recognized by gophpfix",
		Long:  environmentHelp(),
	}
}

func environmentHelp() string {
	vars := configloader.ListEnvVars()

	names := make([]string, 0, len(vars))
	width := 0
	for name := range vars {
		names = append(names, name)
		if len(name) > width {
			width = len(name)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Environment variables override config files but lose to CLI flags:\n\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, name, vars[name])
	}
	return strings.TrimRight(b.String(), "\n")
}
