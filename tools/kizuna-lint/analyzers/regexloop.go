package analyzers

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
)

// RegexLoopAnalyzer detects regexp.Compile/MustCompile calls inside loops.
var RegexLoopAnalyzer = &analysis.Analyzer{
	Name:     "regexloop",
	Doc:      "detects regexp.Compile/MustCompile calls inside loops",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runRegexLoop,
}

var regexpFuncs = map[string]bool{
	"Compile":          true,
	"MustCompile":      true,
	"CompilePOSIX":     true,
	"MustCompilePOSIX": true,
}

func runRegexLoop(pass *analysis.Pass) (interface{}, error) {
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

			ident, ok := sel.X.(*ast.Ident)
			if !ok {
				return true
			}

			if ident.Name == "regexp" && regexpFuncs[sel.Sel.Name] {
				pass.Reportf(call.Pos(),
					"regexp.%s called inside loop - compile once outside loop",
					sel.Sel.Name)
			}

			return true
		})
	})

	return nil, nil
}
