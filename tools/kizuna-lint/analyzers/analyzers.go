// Package analyzers provides the custom static analyzers for kizuna-core.
// Each analyzer flags a performance pattern that has bitten the codebase
// before; they share the loop-walking helper below.
package analyzers

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		LoopQueryAnalyzer,
		RegexLoopAnalyzer,
		StringConcatAnalyzer,
		NestedLoopAnalyzer,
	}
}

// loopNodes is the node filter shared by the loop-body analyzers.
var loopNodes = []ast.Node{
	(*ast.RangeStmt)(nil),
	(*ast.ForStmt)(nil),
}

// eachLoopBody invokes fn with the body of every for and range statement.
func eachLoopBody(pass *analysis.Pass, fn func(body *ast.BlockStmt)) {
	ins := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	ins.Preorder(loopNodes, func(n ast.Node) {
		switch stmt := n.(type) {
		case *ast.RangeStmt:
			fn(stmt.Body)
		case *ast.ForStmt:
			fn(stmt.Body)
		}
	})
}
