// Command hdbscan clusters the rows of a CSV file with HDBSCAN* and reports
// the clusters found and the most outlying points.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
