package analyzers

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// NestedLoopAnalyzer detects O(n²) nested loops over the same collection.
// The graph builder and the filter evaluator both iterate full snapshots;
// pairing two of those scans belongs in a map.
var NestedLoopAnalyzer = &analysis.Analyzer{
	Name:     "nestedloop",
	Doc:      "detects O(n²) nested loops over the same collection",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runNestedLoop,
}

func runNestedLoop(pass *analysis.Pass) (interface{}, error) {
	ins := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	ins.Preorder([]ast.Node{(*ast.RangeStmt)(nil)}, func(n ast.Node) {
		outer := n.(*ast.RangeStmt)

		outerIdent := rangeTarget(outer.X)
		if outerIdent == "" {
			return
		}

		ast.Inspect(outer.Body, func(n ast.Node) bool {
			inner, ok := n.(*ast.RangeStmt)
			if !ok {
				return true
			}

			if rangeTarget(inner.X) == outerIdent {
				pass.Reportf(inner.Pos(),
					"O(n²) pattern: nested loop over same collection %q - consider using a map",
					outerIdent)
			}

			return true
		})
	})

	return nil, nil
}

// rangeTarget extracts the ranged-over identifier name from an expression.
func rangeTarget(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		if ident, ok := e.X.(*ast.Ident); ok {
			return ident.Name + "." + e.Sel.Name
		}
	}
	return ""
}
