package analyzers_test

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/ersonp/kizuna-core/tools/kizuna-lint/analyzers"
)

func TestLoopQuery(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), analyzers.LoopQueryAnalyzer, "loopquery")
}

func TestStringConcat(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), analyzers.StringConcatAnalyzer, "stringconcat")
}
