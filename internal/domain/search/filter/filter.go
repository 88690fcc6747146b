package filter

import "fmt"

// MaxConditionsPerGroup is the maximum number of conditions per filter group.
const MaxConditionsPerGroup = 32

// Expression is a structured filter with must/should/must_not boolean semantics.
type Expression struct {
	must    []Condition
	should  []Condition
	mustNot []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must, should, mustNot []Condition) (Expression, error) {
	if len(must) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(should) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many should conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(mustNot) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must_not conditions (max %d)", MaxConditionsPerGroup)
	}
	return Expression{must: must, should: should, mustNot: mustNot}, nil
}

// Must returns the must conditions.
func (e Expression) Must() []Condition { return e.must }

// Should returns the should conditions.
func (e Expression) Should() []Condition { return e.should }

// MustNot returns the must-not conditions.
func (e Expression) MustNot() []Condition { return e.mustNot }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.should) == 0 && len(e.mustNot) == 0
}

// Kind discriminates the variants of Condition.
type Kind int

// Condition kinds.
const (
	// KindMatch is an exact tag match.
	KindMatch Kind = iota + 1
	// KindRange is a numeric range.
	KindRange
	// KindText is a weighted full-text prefix match on a text field.
	KindText
	// KindAnyOf is satisfied when at least one nested condition is.
	KindAnyOf
)

// Condition is a single filter clause: a tag match, a numeric range,
// a weighted text match, or a disjunction of nested conditions.
type Condition struct {
	kind      Kind
	key       string
	match     string
	rangeExpr *Range
	weight    float64
	anyOf     []Condition
}

// NewMatch creates an exact tag match condition.
func NewMatch(key, match string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if match == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{kind: KindMatch, key: key, match: match}, nil
}

// NewRange creates a numeric range condition.
func NewRange(key string, r Range) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	return Condition{kind: KindRange, key: key, rangeExpr: &r}, nil
}

// NewText creates a full-text condition on key. Weight boosts matches in
// ranking; values <= 0 mean the field default.
func NewText(key, term string, weight float64) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if term == "" {
		return Condition{}, fmt.Errorf("text term is required for key %q", key)
	}
	return Condition{kind: KindText, key: key, match: term, weight: weight}, nil
}

// NewAnyOf creates a disjunction. A single condition is returned unchanged.
func NewAnyOf(conds ...Condition) (Condition, error) {
	switch {
	case len(conds) == 0:
		return Condition{}, fmt.Errorf("any-of requires at least one condition")
	case len(conds) == 1:
		return conds[0], nil
	case len(conds) > MaxConditionsPerGroup:
		return Condition{}, fmt.Errorf("too many any-of conditions (max %d)", MaxConditionsPerGroup)
	}
	return Condition{kind: KindAnyOf, anyOf: conds}, nil
}

// Kind returns the condition variant.
func (c Condition) Kind() Kind { return c.kind }

// Key returns the field name. Empty for any-of conditions.
func (c Condition) Key() string { return c.key }

// Match returns the exact match value.
func (c Condition) Match() string {
	if c.kind != KindMatch {
		return ""
	}
	return c.match
}

// Term returns the text search term.
func (c Condition) Term() string {
	if c.kind != KindText {
		return ""
	}
	return c.match
}

// Weight returns the text boost.
func (c Condition) Weight() float64 { return c.weight }

// Range returns the numeric range expression.
func (c Condition) Range() *Range { return c.rangeExpr }

// AnyOf returns the nested conditions of a disjunction.
func (c Condition) AnyOf() []Condition { return c.anyOf }

// IsMatch reports whether this is a match condition.
func (c Condition) IsMatch() bool { return c.kind == KindMatch }

// IsRange reports whether this is a range condition.
func (c Condition) IsRange() bool { return c.kind == KindRange }

// IsText reports whether this is a text condition.
func (c Condition) IsText() bool { return c.kind == KindText }

// IsAnyOf reports whether this is a disjunction.
func (c Condition) IsAnyOf() bool { return c.kind == KindAnyOf }

// Range is a numeric range with gt/gte/lt/lte boundaries.
type Range struct {
	gt  *float64
	gte *float64
	lt  *float64
	lte *float64
}

// NewRangeFilter validates and creates a Range.
// At least one boundary required. gt/gte and lt/lte are mutually exclusive.
func NewRangeFilter(gt, gte, lt, lte *float64) (Range, error) {
	if gt == nil && gte == nil && lt == nil && lte == nil {
		return Range{}, fmt.Errorf("at least one range boundary is required")
	}
	if gt != nil && gte != nil {
		return Range{}, fmt.Errorf("cannot specify both gt and gte")
	}
	if lt != nil && lte != nil {
		return Range{}, fmt.Errorf("cannot specify both lt and lte")
	}
	return Range{gt: gt, gte: gte, lt: lt, lte: lte}, nil
}

// GT returns the lower exclusive bound.
func (r Range) GT() *float64 { return r.gt }

// GTE returns the lower inclusive bound.
func (r Range) GTE() *float64 { return r.gte }

// LT returns the upper exclusive bound.
func (r Range) LT() *float64 { return r.lt }

// LTE returns the upper inclusive bound.
func (r Range) LTE() *float64 { return r.lte }
