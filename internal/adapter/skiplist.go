package adapter

import (
	"fmt"
	"regexp"

	m "sift.dev/pkg/sift/internal/model"
)

// SkipRule skips tests whose full title matches Title when compiling for one
// of the listed browsers. An empty browser list applies to every browser.
type SkipRule struct {
	Browsers []string `mapstructure:"browsers" yaml:"browsers"`
	Title    string   `mapstructure:"title" yaml:"title"`
	Reason   string   `mapstructure:"reason" yaml:"reason"`
}

type compiledRule struct {
	browsers []string
	title    *regexp.Regexp
	reason   string
}

// SkipList is the per-browser skip-policy collaborator: a rule set applied to
// a compiled tree's root before selection is finalized.
type SkipList struct {
	rules []compiledRule
}

// NewSkipList compiles the rule patterns up front so Apply cannot fail.
func NewSkipList(rules []SkipRule) (*SkipList, error) {
	compiled := make([]compiledRule, 0, len(rules))

	for _, rule := range rules {
		re, err := regexp.Compile(rule.Title)
		if err != nil {
			return nil, fmt.Errorf("skip rule pattern %q: %w", rule.Title, err)
		}

		compiled = append(compiled, compiledRule{
			browsers: rule.Browsers,
			title:    re,
			reason:   rule.Reason,
		})
	}

	return &SkipList{rules: compiled}, nil
}

// Apply marks every matching test pending with the rule's reason. Matching is
// reported, never silent.
func (s *SkipList) Apply(root *m.Suite, browserID string) {
	root.EachTest(func(t *m.Test) {
		for _, rule := range s.rules {
			if !rule.appliesTo(browserID) || !rule.title.MatchString(t.FullTitle()) {
				continue
			}

			t.Pending = true
			t.SilentSkip = false
			t.SkipReason = rule.reason
		}
	})
}

func (r compiledRule) appliesTo(browserID string) bool {
	if len(r.browsers) == 0 {
		return true
	}

	for _, b := range r.browsers {
		if b == browserID {
			return true
		}
	}

	return false
}
