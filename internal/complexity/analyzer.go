package complexity

import (
	"github.com/kolkov/bigo/ast"
	"github.com/kolkov/bigo/internal/semantic"
)

// Result is the outcome of one analysis pass.
type Result struct {
	// Program is the bound for the whole program.
	Program Complexity

	// Routines maps each declared routine to its resolved cost.
	Routines map[string]Complexity

	// Nodes maps every visited statement and expression to its bound,
	// for visualization collaborators. The map is keyed by node
	// identity, which is stable for the lifetime of one analysis.
	Nodes map[ast.Node]Complexity

	// Findings are localized classification problems (malformed loop
	// bounds, unresolvable recursion shapes). They never abort the
	// pass: the offending node degrades to Indeterminate and the rest
	// of the tree still resolves.
	Findings semantic.ErrorList
}

// Analyzer computes asymptotic bounds in a single post-order traversal.
// It never mutates the tree.
type Analyzer struct {
	info   *semantic.Info
	result *Result

	// Routine costs are memoized per analysis run, never across runs.
	memo       map[string]Complexity
	inProgress map[string]bool

	// Name of the routine being analyzed; its self-call sites are
	// counted rather than costed so the body total is f(n), the
	// non-recursive work of the recurrence.
	current string
}

// cost is the value threaded through the post-order walk: the bound
// pair plus how many self-call sites lie on the worst-case and
// cheapest paths through the subtree. A count of -1 means the number
// of self-calls is not a constant (recursion inside a growing loop).
type cost struct {
	cx       Complexity
	maxCalls int
	minCalls int

	// ret is the cheapest path through the subtree that ends in a
	// RETURN. A guarded base case ("IF n ≤ 1 THEN RETURN 1") makes a
	// routine's best case the cost of reaching that return, not the
	// cost of a full pass over the body.
	ret retPath
}

// retPath is a candidate early-exit path: its accumulated cost class
// and self-call count.
type retPath struct {
	cls   Class
	calls int
	ok    bool
}

// callRank orders self-call counts with -1 (unbounded) as the worst.
func callRank(c int) int {
	if c < 0 {
		return int(^uint(0) >> 1)
	}
	return c
}

// minRetPath picks the cheaper of two candidate exits: fewest
// self-calls first, then the smaller growth class.
func minRetPath(a, b retPath) retPath {
	if !a.ok {
		return b
	}
	if !b.ok {
		return a
	}
	if ra, rb := callRank(a.calls), callRank(b.calls); ra != rb {
		if ra < rb {
			return a
		}
		return b
	}
	return retPath{cls: Min(a.cls, b.cls), calls: a.calls, ok: true}
}

func exact(c Class) cost { return cost{cx: Exact(c)} }

// Analyze computes bounds for every routine and the main block of a
// resolved program. The result is a pure function of the tree: running
// it twice on the same tree yields identical results.
func Analyze(prog *ast.Program, info *semantic.Info) *Result {
	a := &Analyzer{
		info: info,
		result: &Result{
			Routines: make(map[string]Complexity),
			Nodes:    make(map[ast.Node]Complexity),
		},
		memo:       make(map[string]Complexity),
		inProgress: make(map[string]bool),
	}

	for _, fn := range prog.Functions {
		cx := a.routineCost(fn.Name)
		a.result.Routines[fn.Name] = cx
		a.result.Nodes[fn] = cx
	}

	main := a.block(prog.Main)
	if main.ret.ok {
		main.cx.Omega = Min(main.cx.Omega, main.ret.cls)
	}
	a.result.Program = main.cx
	a.result.Nodes[prog] = main.cx
	return a.result
}

// routineCost resolves one routine's bound, memoized per run.
// Recursive routines go through the recurrence solver; mutual
// recursion across routines is out of scope and degrades to
// Indeterminate.
func (a *Analyzer) routineCost(name string) Complexity {
	if cx, ok := a.memo[name]; ok {
		return cx
	}
	rt := a.info.Routines[name]
	if rt == nil {
		return Indeterminate()
	}
	if a.inProgress[name] {
		a.result.Findings.Add(rt.Pos, "routine %q is mutually recursive, cannot resolve", name)
		return Indeterminate()
	}
	a.inProgress[name] = true
	prev := a.current

	var cx Complexity
	if rt.Recursive {
		a.current = name
		cx = a.solveRecursive(rt)
	} else {
		a.current = ""
		body := a.block(rt.Decl.Body)
		cx = body.cx
		if body.ret.ok {
			cx.Omega = Min(cx.Omega, body.ret.cls)
		}
	}

	a.current = prev
	delete(a.inProgress, name)
	a.memo[name] = cx
	return cx
}

// solveRecursive builds a recurrence descriptor from the routine body
// and resolves it. The body is analyzed with self-calls costed at Θ(1),
// so its bound is exactly f(n), the non-recursive work per invocation.
func (a *Analyzer) solveRecursive(rt *semantic.RoutineInfo) Complexity {
	body := a.block(rt.Decl.Body)

	sh, ok := a.routineShrink(rt)
	if !ok {
		a.result.Findings.Add(rt.Pos,
			"routine %q: recursive calls have no single shrink rate, cannot resolve", rt.Name)
		return Indeterminate()
	}
	if body.maxCalls < 0 {
		a.result.Findings.Add(rt.Pos,
			"routine %q: number of recursive calls per invocation is not constant", rt.Name)
		return Indeterminate()
	}
	if body.maxCalls == 0 {
		// Resolution flagged recursion but the walk found no reachable
		// self-call. Treat as non-recursive.
		return body.cx
	}

	worst := Solve(Descriptor{
		Calls:    body.maxCalls,
		DivideBy: sh.divideBy,
		Subtract: sh.subtract,
		Work:     body.cx.O,
	})

	// Best case: the cheapest path through one invocation, counting an
	// early return as an exit. A path with no self-calls is a
	// reachable base case and its own cost is the lower bound;
	// otherwise the recursion always unwinds and the lower bound is
	// its own recurrence on the cheapest work.
	bestCalls, bestWork := body.minCalls, body.cx.Omega
	if body.ret.ok {
		switch {
		case callRank(body.ret.calls) < callRank(bestCalls):
			bestCalls, bestWork = body.ret.calls, body.ret.cls
		case body.ret.calls == bestCalls:
			bestWork = Min(bestWork, body.ret.cls)
		}
	}

	var best Class
	switch {
	case bestCalls == 0:
		best = bestWork
	case bestCalls < 0:
		best = Unknown()
	default:
		best = Solve(Descriptor{
			Calls:    bestCalls,
			DivideBy: sh.divideBy,
			Subtract: sh.subtract,
			Work:     bestWork,
		})
	}

	return Complexity{O: worst, Omega: best}
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

// block composes a statement sequence: costs sum, and a sum of growth
// classes reduces to its dominant term, independently for O and Ω.
func (a *Analyzer) block(b *ast.BlockStmt) cost {
	if b == nil || len(b.Stmts) == 0 {
		return exact(Constant())
	}
	total := exact(Constant())
	for _, s := range b.Stmts {
		sc := a.stmt(s)
		if sc.ret.ok {
			// A return here exits after the preceding statements plus
			// the cheapest returning path through this one.
			total.ret = minRetPath(total.ret, retPath{
				cls:   Max(total.cx.Omega, sc.ret.cls),
				calls: addCalls(total.minCalls, sc.ret.calls),
				ok:    true,
			})
		}
		total.cx.O = Max(total.cx.O, sc.cx.O)
		total.cx.Omega = Max(total.cx.Omega, sc.cx.Omega)
		total.maxCalls = addCalls(total.maxCalls, sc.maxCalls)
		total.minCalls = addCalls(total.minCalls, sc.minCalls)
	}
	a.result.Nodes[b] = total.cx
	return total
}

// The Analyzer is a Visitor[cost]: the interface covers the closed
// node set, so a new node kind fails to compile until it is costed
// here.
var _ ast.Visitor[cost] = (*Analyzer)(nil)

// stmt costs one statement through visitor dispatch and records its
// bound for visualization.
func (a *Analyzer) stmt(s ast.Stmt) cost {
	c := ast.Accept[cost](s, a)
	a.result.Nodes[s] = c.cx
	return c
}

// VisitProgram costs the main block; routine declarations are costed
// on demand through routineCost.
func (a *Analyzer) VisitProgram(p *ast.Program) cost {
	return a.block(p.Main)
}

func (a *Analyzer) VisitFuncDecl(f *ast.FuncDecl) cost {
	return cost{cx: a.routineCost(f.Name)}
}

func (a *Analyzer) VisitBlockStmt(s *ast.BlockStmt) cost {
	return a.block(s)
}

func (a *Analyzer) VisitAssignStmt(s *ast.AssignStmt) cost {
	return a.assign(s)
}

func (a *Analyzer) VisitCallStmt(s *ast.CallStmt) cost {
	return a.call(s.Name, s.Recursive, s.Args)
}

func (a *Analyzer) VisitReturnStmt(s *ast.ReturnStmt) cost {
	c := exact(Constant())
	if s.Value != nil {
		c = a.expr(s.Value)
	}
	c.ret = retPath{cls: c.cx.Omega, calls: c.minCalls, ok: true}
	return c
}

func (a *Analyzer) VisitForStmt(s *ast.ForStmt) cost {
	return a.forLoop(s)
}

func (a *Analyzer) VisitWhileStmt(s *ast.WhileStmt) cost {
	return a.condLoop(s, s.Cond, s.Body)
}

func (a *Analyzer) VisitRepeatStmt(s *ast.RepeatStmt) cost {
	return a.condLoop(s, s.Cond, s.Body)
}

func (a *Analyzer) VisitIfStmt(s *ast.IfStmt) cost {
	return a.conditional(s)
}

func (a *Analyzer) assign(s *ast.AssignStmt) cost {
	c := exact(Constant())
	for _, idx := range s.Index {
		c = join(c, a.expr(idx))
	}
	return join(c, a.expr(s.Value))
}

// forLoop multiplies the body bound by the iteration factor of the
// counted range. Nesting needs no special case: the outer body bound
// already contains the inner loop's resolved value.
func (a *Analyzer) forLoop(s *ast.ForStmt) cost {
	from := a.expr(s.From)
	to := a.expr(s.To)
	body := a.block(s.Body)

	factor, trips := forFactor(s.From, s.To)
	if factor.Indeterminate {
		a.result.Findings.Add(s.Pos(), "cannot determine iteration count of FOR loop bound")
		return cost{
			cx:       Indeterminate(),
			maxCalls: scaleCalls(body.maxCalls, -1),
			minCalls: scaleCalls(body.minCalls, -1),
			ret:      body.ret,
		}
	}

	c := cost{
		cx: Complexity{
			O:     Mul(factor, body.cx.O),
			Omega: Mul(factor, body.cx.Omega),
		},
		maxCalls: scaleCalls(body.maxCalls, trips),
		minCalls: scaleCalls(body.minCalls, trips),
		// A return inside the loop can exit on the first iteration.
		ret: body.ret,
	}
	// Bound expressions are evaluated on entry, once.
	c.cx.O = Max(c.cx.O, Max(from.cx.O, to.cx.O))
	c.cx.Omega = Max(c.cx.Omega, Max(from.cx.Omega, to.cx.Omega))
	c.maxCalls = addCalls(c.maxCalls, addCalls(from.maxCalls, to.maxCalls))
	c.minCalls = addCalls(c.minCalls, addCalls(from.minCalls, to.minCalls))
	return c
}

// condLoop handles WHILE and REPEAT-UNTIL: the iteration factor comes
// from recognizing how the body moves the controlling variable toward
// the condition's bound.
func (a *Analyzer) condLoop(s ast.Stmt, cond ast.Expr, body *ast.BlockStmt) cost {
	condCost := a.expr(cond)
	bodyCost := a.block(body)

	factor := condFactor(cond, body)
	if factor.Indeterminate {
		a.result.Findings.Add(s.Pos(), "cannot determine iteration count of condition-controlled loop")
		return cost{
			cx:       Indeterminate(),
			maxCalls: scaleCalls(addCalls(bodyCost.maxCalls, condCost.maxCalls), -1),
			minCalls: scaleCalls(addCalls(bodyCost.minCalls, condCost.minCalls), -1),
			ret:      bodyCost.ret,
		}
	}

	perIter := Complexity{
		O:     Max(bodyCost.cx.O, condCost.cx.O),
		Omega: Max(bodyCost.cx.Omega, condCost.cx.Omega),
	}
	iterCalls := addCalls(bodyCost.maxCalls, condCost.maxCalls)
	return cost{
		cx: Complexity{
			O:     Mul(factor, perIter.O),
			Omega: Mul(factor, perIter.Omega),
		},
		maxCalls: scaleCalls(iterCalls, -1),
		minCalls: scaleCalls(addCalls(bodyCost.minCalls, condCost.minCalls), -1),
		ret:      bodyCost.ret,
	}
}

// conditional takes the worst branch for O and the cheapest reachable
// branch for Ω; a missing else is an implicit empty Θ(1) branch. Θ
// emerges only when the two coincide.
func (a *Analyzer) conditional(s *ast.IfStmt) cost {
	worst := Constant()
	condCalls := 0
	firstCondMin := 0

	var branches []cost
	for i, br := range s.Branches {
		cond := a.expr(br.Cond)
		worst = Max(worst, cond.cx.O)
		condCalls = addCalls(condCalls, cond.maxCalls)
		if i == 0 {
			// Every path evaluates the first condition.
			firstCondMin = cond.minCalls
		}
		branches = append(branches, a.block(br.Body))
	}

	elseCost := exact(Constant())
	if s.Else != nil {
		elseCost = a.block(s.Else)
	}
	branches = append(branches, elseCost)

	best := branches[0].cx.Omega
	maxCalls := 0
	minCalls := branches[0].minCalls
	var ret retPath
	for i, bc := range branches {
		worst = Max(worst, bc.cx.O)
		maxCalls = maxInt(maxCalls, bc.maxCalls)
		ret = minRetPath(ret, bc.ret)
		if i > 0 {
			best = Min(best, bc.cx.Omega)
			minCalls = minInt(minCalls, bc.minCalls)
		}
	}
	if ret.ok {
		ret.calls = addCalls(ret.calls, firstCondMin)
	}

	return cost{
		cx:       Complexity{O: worst, Omega: best},
		maxCalls: addCalls(condCalls, maxCalls),
		minCalls: addCalls(firstCondMin, minCalls),
		ret:      ret,
	}
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

// expr costs an expression through visitor dispatch: operators are
// unit work, so the bound is the dominance over embedded call costs.
func (a *Analyzer) expr(e ast.Expr) cost {
	c := ast.Accept[cost](e, a)
	a.result.Nodes[e] = c.cx
	return c
}

func (a *Analyzer) VisitNumLit(*ast.NumLit) cost { return exact(Constant()) }

func (a *Analyzer) VisitIdent(*ast.Ident) cost { return exact(Constant()) }

func (a *Analyzer) VisitBinaryExpr(e *ast.BinaryExpr) cost {
	return join(a.expr(e.Left), a.expr(e.Right))
}

func (a *Analyzer) VisitUnaryExpr(e *ast.UnaryExpr) cost {
	return a.expr(e.Expr)
}

func (a *Analyzer) VisitGroupExpr(e *ast.GroupExpr) cost {
	return a.expr(e.Expr)
}

func (a *Analyzer) VisitIndexExpr(e *ast.IndexExpr) cost {
	c := exact(Constant())
	for _, idx := range e.Index {
		c = join(c, a.expr(idx))
	}
	return c
}

func (a *Analyzer) VisitCallExpr(e *ast.CallExpr) cost {
	return a.call(e.Name, e.Recursive, e.Args)
}

// call costs a call site. A self-call inside the routine under
// analysis is counted, not costed: the recurrence solver owns its
// contribution. Other calls contribute the callee's memoized bound.
func (a *Analyzer) call(name string, recursive bool, args []ast.Expr) cost {
	c := exact(Constant())
	for _, arg := range args {
		c = join(c, a.expr(arg))
	}

	if recursive && a.current == name {
		c.maxCalls++
		c.minCalls++
		return c
	}

	if _, ok := a.info.Routines[name]; !ok {
		// Undefined routine: already a semantic finding; the bound is
		// unresolvable here but stays local.
		c.cx = Indeterminate()
		return c
	}
	callee := a.routineCost(name)
	c.cx.O = Max(c.cx.O, callee.O)
	c.cx.Omega = Max(c.cx.Omega, callee.Omega)
	return c
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// join composes two costs that both execute (sequencing inside one
// statement or expression).
func join(a, b cost) cost {
	return cost{
		cx: Complexity{
			O:     Max(a.cx.O, b.cx.O),
			Omega: Max(a.cx.Omega, b.cx.Omega),
		},
		maxCalls: addCalls(a.maxCalls, b.maxCalls),
		minCalls: addCalls(a.minCalls, b.minCalls),
	}
}

// addCalls sums self-call counts; -1 (unbounded) absorbs.
func addCalls(a, b int) int {
	if a < 0 || b < 0 {
		return -1
	}
	return a + b
}

// scaleCalls multiplies a self-call count by a trip count. trips < 0
// means the trip count is not a known constant, which makes any
// positive call count unbounded.
func scaleCalls(calls, trips int) int {
	if calls == 0 {
		return 0
	}
	if calls < 0 || trips < 0 {
		return -1
	}
	return calls * trips
}

func maxInt(a, b int) int {
	if a < 0 || b < 0 {
		return -1
	}
	if a > b {
		return a
	}
	return b
}

// minInt picks the smaller self-call count; -1 (unbounded) loses to
// any known count, since the cheapest path avoids the unbounded branch.
func minInt(a, b int) int {
	if a < 0 {
		return b
	}
	if b < 0 {
		return a
	}
	if a < b {
		return a
	}
	return b
}
