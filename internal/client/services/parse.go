package services

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/customerconnect/internal/client/models"
	"github.com/dmitrijs2005/customerconnect/internal/common"
	"github.com/dmitrijs2005/customerconnect/internal/validation"
)

// DefaultRange is the analytics range used when none is given.
const DefaultRange = "30d"

var ranges = map[string]int{
	"7d": 7, "30d": 30, "90d": 90, "1y": 365,
	"7": 7, "30": 30, "90": 90, "365": 365,
}

// ParseRange converts a range label (7d, 30d, 90d, 1y, or the plain day
// counts) to days.
func ParseRange(label string) (int, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		label = DefaultRange
	}
	days, ok := ranges[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q (use 7d, 30d, 90d or 1y)", common.ErrorInvalidRange, label)
	}
	return days, nil
}

var operatorSymbols = map[string]string{
	"=":  "eq",
	"==": "eq",
	"!=": "ne",
	">":  "gt",
	">=": "gte",
	"<":  "lt",
	"<=": "lte",
}

// ParseCriteria parses rules such as
//
//	totalSpent >= 1000 AND location contains New York
//
// Rules are "field operator value" separated by AND or OR (upper case);
// mixing both in one expression is rejected.
func ParseCriteria(expr string) (models.SegmentCriteria, error) {
	var (
		c   models.SegmentCriteria
		cur []string
	)

	flush := func() error {
		r, err := parseRule(cur)
		if err != nil {
			return err
		}
		c.Rules = append(c.Rules, r)
		cur = nil
		return nil
	}

	for _, tok := range strings.Fields(expr) {
		if tok != "AND" && tok != "OR" {
			cur = append(cur, tok)
			continue
		}
		if c.Logic != "" && c.Logic != tok {
			return models.SegmentCriteria{}, fmt.Errorf("%w: cannot mix AND and OR", common.ErrorIncorrectRule)
		}
		c.Logic = tok
		if err := flush(); err != nil {
			return models.SegmentCriteria{}, err
		}
	}
	if err := flush(); err != nil {
		return models.SegmentCriteria{}, err
	}

	if c.Logic == "" {
		c.Logic = "AND"
	}
	return c, nil
}

func parseRule(tokens []string) (models.SegmentRule, error) {
	if len(tokens) < 3 {
		return models.SegmentRule{}, fmt.Errorf("%w: %q, want \"field operator value\"",
			common.ErrorIncorrectRule, strings.Join(tokens, " "))
	}

	op := tokens[1]
	if named, ok := operatorSymbols[op]; ok {
		op = named
	}
	r := models.SegmentRule{Field: tokens[0], Operator: op, Value: strings.Join(tokens[2:], " ")}

	if err := validation.Validate(r); err != nil {
		return models.SegmentRule{}, fmt.Errorf("%w: %w", common.ErrorIncorrectRule, err)
	}
	return r, nil
}
