package sat

import (
	"github.com/samber/lo"
)

// Literal is a DIMACS literal: a positive variable index or its negation
type Literal int64

func (literal Literal) Not() Literal {
	return -literal
}

func (literal Literal) Var() int64 {
	if literal < 0 {
		return int64(-literal)
	}
	return int64(literal)
}

// Sets of at most this many literals are constrained to at-most-one pairwise, larger ones go through a sequential counter
const pairwiseThreshold = 6

// Builder incrementally assembles a CNF instance out of clauses and cardinality constraints over boolean literals
type Builder struct {
	variables uint64
	clauses   [][]int64
	names     map[int64]string
}

func NewBuilder() *Builder {
	return &Builder{
		clauses: make([][]int64, 0),
		names:   make(map[int64]string),
	}
}

// NewVar allocates a fresh variable; the name is optional and only used for DIMACS comments
func (builder *Builder) NewVar(name string) Literal {
	builder.variables++
	if name != "" {
		builder.names[int64(builder.variables)] = name
	}
	return Literal(builder.variables)
}

func (builder *Builder) AddClause(literals ...Literal) {
	clause := lo.Map(literals, func(literal Literal, _ int) int64 { return int64(literal) })
	builder.clauses = append(builder.clauses, clause)
}

// Implies adds antecedent -> consequent
func (builder *Builder) Implies(antecedent, consequent Literal) {
	builder.AddClause(antecedent.Not(), consequent)
}

// AtMost constrains the number of true literals to be smaller than or equal to k
func (builder *Builder) AtMost(literals []Literal, k int) {
	n := len(literals)
	switch {
	case k < 0:
		builder.contradiction()
	case k >= n:
		// Trivially satisfied
	case k == 0:
		for _, literal := range literals {
			builder.AddClause(literal.Not())
		}
	case k == 1 && n <= pairwiseThreshold:
		for i := range n - 1 {
			for j := i + 1; j < n; j++ {
				builder.AddClause(literals[i].Not(), literals[j].Not())
			}
		}
	default:
		builder.sequentialCounter(literals, k)
	}
}

// AtLeast constrains the number of true literals to be greater than or equal to k
func (builder *Builder) AtLeast(literals []Literal, k int) {
	n := len(literals)
	switch {
	case k <= 0:
		// Trivially satisfied
	case k > n:
		builder.contradiction()
	case k == 1:
		builder.AddClause(literals...)
	default:
		// At least k true is at most n-k false
		negated := lo.Map(literals, func(literal Literal, _ int) Literal { return literal.Not() })
		builder.AtMost(negated, n-k)
	}
}

func (builder *Builder) Exactly(literals []Literal, k int) {
	builder.AtLeast(literals, k)
	builder.AtMost(literals, k)
}

// Range constrains the number of true literals to lie within [low, high]
func (builder *Builder) Range(literals []Literal, low, high int) {
	if low > high {
		builder.contradiction()
		return
	}
	builder.AtLeast(literals, low)
	builder.AtMost(literals, high)
}

func (builder *Builder) Variables() uint64 {
	return builder.variables
}

func (builder *Builder) Clauses() int {
	return len(builder.clauses)
}

// Instance returns a snapshot of the CNF built so far; later additions do not affect it
func (builder *Builder) Instance() SAT {
	clauses := make([][]int64, len(builder.clauses))
	copy(clauses, builder.clauses)

	names := make(map[int64]string, len(builder.names))
	for variable, name := range builder.names {
		names[variable] = name
	}

	return SAT{
		Variables: builder.variables,
		Clauses:   clauses,
		Names:     names,
	}
}

// Sequential counter encoding (Sinz, 2005) of sum(literals) <= k for 1 <= k < len(literals).
// Register s[i][j] holds when at least j+1 of literals[0..i] are true.
func (builder *Builder) sequentialCounter(literals []Literal, k int) {
	n := len(literals)

	registers := make([][]Literal, n-1)
	for i := range registers {
		registers[i] = make([]Literal, k)
		for j := range k {
			registers[i][j] = builder.NewVar("")
		}
	}

	//** First literal
	builder.AddClause(literals[0].Not(), registers[0][0])
	for j := 1; j < k; j++ {
		builder.AddClause(registers[0][j].Not())
	}

	//** Middle literals
	for i := 1; i < n-1; i++ {
		builder.AddClause(literals[i].Not(), registers[i][0])
		builder.AddClause(registers[i-1][0].Not(), registers[i][0])
		for j := 1; j < k; j++ {
			builder.AddClause(literals[i].Not(), registers[i-1][j-1].Not(), registers[i][j])
			builder.AddClause(registers[i-1][j].Not(), registers[i][j])
		}
		builder.AddClause(literals[i].Not(), registers[i-1][k-1].Not()) // Overflow
	}

	//** Last literal
	builder.AddClause(literals[n-1].Not(), registers[n-2][k-1].Not())
}

// Adds a pair of complementary unit clauses over a fresh variable, making the instance unsatisfiable
func (builder *Builder) contradiction() {
	falsum := builder.NewVar("")
	builder.AddClause(falsum)
	builder.AddClause(falsum.Not())
}
