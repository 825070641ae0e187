package ledger

import "testing"

func TestClassifyRuleOrder(t *testing.T) {
	rule, ok := Classify(DefaultClassifyRules, "ดอกเบี้ยเงินอาหารกลางวัน ไตรมาส 1")
	if !ok {
		t.Fatalf("expected a match")
	}
	if rule.FundType != "fund-state-lunch-interest" {
		t.Fatalf("lunch interest rule must win over plain interest, got %s", rule.FundType)
	}

	rule, ok = Classify(DefaultClassifyRules, "ดอกเบี้ยเงินฝากธนาคาร")
	if !ok || rule.FundType != "fund-state-subsidy-interest" {
		t.Fatalf("expected subsidy interest rule, got %+v ok=%v", rule, ok)
	}
	if rule.BankHint != "bank-subsidy" {
		t.Fatalf("expected bank hint, got %q", rule.BankHint)
	}
}

func TestClassifyTax(t *testing.T) {
	rule, ok := Classify(DefaultClassifyRules, "นำส่งภาษีหัก ณ ที่จ่าย")
	if !ok || rule.FundType != "fund-tax" {
		t.Fatalf("expected tax rule, got %+v ok=%v", rule, ok)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	if _, ok := Classify(DefaultClassifyRules, "ค่าวัสดุสำนักงาน"); ok {
		t.Fatalf("expected no match")
	}
	if _, ok := Classify(nil, "อะไรก็ได้"); ok {
		t.Fatalf("empty rule set must never match")
	}
}
