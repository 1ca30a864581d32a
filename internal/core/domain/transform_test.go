package domain_test

import (
	"testing"

	"go.trai.ch/weft/internal/core/domain"
)

func step(action string, params map[string]string) domain.Registration {
	return domain.Registration{
		Action:     action,
		Parameters: params,
		To:         domain.EmptyAttributeSet().With("step", domain.StringValue(action)),
	}
}

func TestRegistration_ID(t *testing.T) {
	plain := step("unzip", nil)
	if got := plain.ID(); got != "unzip" {
		t.Errorf("ID() = %q, want unzip", got)
	}

	parameterized := step("minify", map[string]string{"level": "9", "engine": "closure"})
	if got := parameterized.ID(); got != "minify(engine=closure;level=9)" {
		t.Errorf("ID() = %q", got)
	}
}

func TestRegistration_SameStep_DistinguishesParameters(t *testing.T) {
	a := step("minify", map[string]string{"level": "9"})
	b := step("minify", map[string]string{"level": "1"})
	if a.SameStep(b) {
		t.Error("registrations with different parameters are different steps")
	}
	if !a.SameStep(step("minify", map[string]string{"level": "9"})) {
		t.Error("identical registrations should be the same step")
	}
}

func TestChain_IsSuffixOf(t *testing.T) {
	unzip := step("unzip", nil)
	compile := step("compile", nil)
	minify := step("minify", nil)

	full := domain.Chain{Steps: []domain.Registration{unzip, compile, minify}}
	tail := domain.Chain{Steps: []domain.Registration{compile, minify}}
	other := domain.Chain{Steps: []domain.Registration{unzip, minify}}

	if !tail.IsSuffixOf(full) {
		t.Error("tail should be a suffix of full")
	}
	if full.IsSuffixOf(tail) {
		t.Error("a longer chain is never a suffix of a shorter one")
	}
	if full.IsSuffixOf(full) {
		t.Error("suffix is strict: a chain is not a suffix of itself")
	}
	if other.IsSuffixOf(full) {
		t.Error("same length prefix-skipping sequence is not a suffix")
	}
	empty := domain.Chain{}
	if !empty.IsSuffixOf(full) {
		t.Error("the empty chain is a suffix of any non-empty chain")
	}
}

func TestChain_String(t *testing.T) {
	if got := (domain.Chain{}).String(); got != "<direct>" {
		t.Errorf("empty chain String() = %q", got)
	}
	c := domain.Chain{Steps: []domain.Registration{step("unzip", nil), step("minify", map[string]string{"level": "9"})}}
	if got := c.String(); got != "unzip -> minify(level=9)" {
		t.Errorf("String() = %q", got)
	}
}
