package ledger

import "strings"

// ClassifyRule routes a free-text description to a fund override and a bank
// account hint. Rules are ordered; the first match wins. The table replaces
// ad-hoc keyword sniffing so its false positives never reach the balance
// computations.
type ClassifyRule struct {
	Keywords []string // all must appear in the description
	FundType string
	BankHint string
}

// DefaultClassifyRules covers the interest and withholding-tax routings the
// bookkeeping workflow auto-fills.
var DefaultClassifyRules = []ClassifyRule{
	{Keywords: []string{"ดอกเบี้ย", "อาหารกลางวัน"}, FundType: "fund-state-lunch-interest", BankHint: "bank-lunch"},
	{Keywords: []string{"ดอกเบี้ย"}, FundType: "fund-state-subsidy-interest", BankHint: "bank-subsidy"},
	{Keywords: []string{"ภาษีหัก ณ ที่จ่าย"}, FundType: "fund-tax"},
	{Keywords: []string{"ภาษี 1%"}, FundType: "fund-tax"},
}

// Classify evaluates the rules against a description and returns the first
// matching rule.
func Classify(rules []ClassifyRule, description string) (ClassifyRule, bool) {
	for _, rule := range rules {
		if matchesAll(description, rule.Keywords) {
			return rule, true
		}
	}
	return ClassifyRule{}, false
}

func matchesAll(s string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	for _, kw := range keywords {
		if !strings.Contains(s, kw) {
			return false
		}
	}
	return true
}
