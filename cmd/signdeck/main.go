// Command signdeck scores how well a learner remembers sign vocabulary and
// selects what to practice next, from the command line or over HTTP.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/phrazzld/signdeck/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
