package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/athapong/kegg-overlap/pkg/graph"
	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

type Operator string

const (
	Equal        Operator = "="
	AtLeast      Operator = ">="
	AtMost       Operator = "<="
	ContainsText Operator = "contains"
)

// Fields a filter can test
const (
	FieldGene    = "gene"
	FieldCount   = "count"
	FieldPathway = "pathway"
)

// Query selects and pages rows of an overlap table
type Query struct {
	Filters []Filter `json:"filters"`
	Limit   int      `json:"limit"`
	Skip    int      `json:"skip"`
}

// Filter tests one field of a record. Count filters take an int value, the
// others a string.
type Filter struct {
	Field    string      `json:"field"`
	Operator Operator    `json:"operator"`
	Value    interface{} `json:"value"`
}

func NewQuery() *Query {
	return &Query{
		Filters: make([]Filter, 0),
	}
}

func (q *Query) AddFilter(filter Filter) *Query {
	q.Filters = append(q.Filters, filter)
	return q
}

func (q *Query) SetLimit(limit int) *Query {
	q.Limit = limit
	return q
}

func (q *Query) SetSkip(skip int) *Query {
	q.Skip = skip
	return q
}

// Apply returns the records matching every filter, in their original order,
// after skipping Skip matches and keeping at most Limit (zero means no limit).
func (q *Query) Apply(records []graph.GeneOverlapRecord) ([]graph.GeneOverlapRecord, error) {
	for _, f := range q.Filters {
		if err := f.validate(); err != nil {
			return nil, err
		}
	}
	if q.Limit < 0 || q.Skip < 0 {
		return nil, errors.New("limit and skip must not be negative")
	}

	out := make([]graph.GeneOverlapRecord, 0)
	skipped := 0
	for _, r := range records {
		if !q.matches(r) {
			continue
		}
		if skipped < q.Skip {
			skipped++
			continue
		}
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
		out = append(out, r)
	}
	return out, nil
}

func (q *Query) matches(r graph.GeneOverlapRecord) bool {
	for _, f := range q.Filters {
		if !f.matches(r) {
			return false
		}
	}
	return true
}

func (f Filter) validate() error {
	switch f.Field {
	case FieldCount:
		if _, ok := f.Value.(int); !ok {
			return errors.Errorf("filter on %s needs an integer value", f.Field)
		}
		if f.Operator != Equal && f.Operator != AtLeast && f.Operator != AtMost {
			return errors.Errorf("unsupported operator %q for %s", f.Operator, f.Field)
		}
	case FieldGene, FieldPathway:
		if _, ok := f.Value.(string); !ok {
			return errors.Errorf("filter on %s needs a string value", f.Field)
		}
		if f.Operator != Equal && f.Operator != ContainsText {
			return errors.Errorf("unsupported operator %q for %s", f.Operator, f.Field)
		}
	default:
		return errors.Errorf("unknown field %q", f.Field)
	}
	return nil
}

func (f Filter) matches(r graph.GeneOverlapRecord) bool {
	switch f.Field {
	case FieldCount:
		n := f.Value.(int)
		switch f.Operator {
		case AtLeast:
			return r.Count >= n
		case AtMost:
			return r.Count <= n
		default:
			return r.Count == n
		}
	case FieldGene:
		return matchText(r.Gene, f.Operator, f.Value.(string))
	case FieldPathway:
		for _, id := range r.Pathways {
			if matchText(id, f.Operator, f.Value.(string)) {
				return true
			}
		}
	}
	return false
}

func matchText(s string, op Operator, value string) bool {
	if op == ContainsText {
		return strings.Contains(strings.ToLower(s), strings.ToLower(value))
	}
	return s == value
}

// FromValues builds a query from URL parameters: min and max bound the count,
// gene matches a symbol substring, pathway requires membership of a pathway ID,
// limit and skip page the result.
func FromValues(values url.Values) (*Query, error) {
	q := NewQuery()

	for _, p := range []struct {
		key string
		op  Operator
	}{{"min", AtLeast}, {"max", AtMost}} {
		if raw := values.Get(p.key); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, errors.Errorf("%s must be a number", p.key)
			}
			q.AddFilter(Filter{Field: FieldCount, Operator: p.op, Value: n})
		}
	}
	if gene := strings.TrimSpace(values.Get("gene")); gene != "" {
		q.AddFilter(Filter{Field: FieldGene, Operator: ContainsText, Value: gene})
	}
	if pathway := strings.TrimSpace(values.Get("pathway")); pathway != "" {
		q.AddFilter(Filter{Field: FieldPathway, Operator: Equal, Value: pathway})
	}

	for _, p := range []struct {
		key string
		set func(int) *Query
	}{{"limit", q.SetLimit}, {"skip", q.SetSkip}} {
		if raw := values.Get(p.key); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return nil, errors.Errorf("%s must be a non-negative number", p.key)
			}
			p.set(n)
		}
	}
	return q, nil
}

func (q *Query) String() string {
	bytes, _ := sonic.ConfigStd.MarshalIndent(q, "", "  ")
	return string(bytes)
}
