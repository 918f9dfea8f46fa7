package analyzers

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
)

// LoopQueryAnalyzer detects embedding and vector-store calls inside loops.
// The index rebuild works on batches; per-item calls against the embedder or
// Qdrant turn one round trip into N.
var LoopQueryAnalyzer = &analysis.Analyzer{
	Name:     "loopquery",
	Doc:      "detects per-item embedder/vector-store calls inside loops that should be batched",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runLoopQuery,
}

// remoteMethods are method names whose receiver talks to a remote service.
var remoteMethods = map[string]bool{
	// Embedder interface (non-batch)
	"Embed": true,
	// VectorDB interface
	"Search":           true,
	"SaveBatch":        true,
	"EnsureCollection": true,
	"ResetCollection":  true,
}

func runLoopQuery(pass *analysis.Pass) (interface{}, error) {
	eachLoopBody(pass, func(body *ast.BlockStmt) {
		ast.Inspect(body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			if remoteMethods[sel.Sel.Name] {
				pass.Reportf(call.Pos(),
					"potential N+1: %s called inside loop - batch outside the loop",
					sel.Sel.Name)
			}

			return true
		})
	})

	return nil, nil
}
