// kizuna-lint is a custom static analyzer for kizuna-core performance patterns.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/kizuna-core/tools/kizuna-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
