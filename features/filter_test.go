package features

import (
	"errors"
	"testing"

	"fortio.org/assert"
)

func TestExtractVariables(t *testing.T) {
	testcases := []struct {
		code   string
		expect []string
	}{
		{code: "Amount > 6", expect: []string{"Amount"}},
		{code: "6 < Amount ", expect: []string{"Amount"}},
		{code: "Amount > 6 && V1 < 0 || V2 == 1", expect: []string{"Amount", "V1", "V2"}},
		{code: "abs(V3) > 2", expect: []string{"V3"}},
		{code: "V1 > 0 ? V2 > 0 : V3 > 0", expect: []string{"V1", "V2", "V3"}},
	}
	for _, tcase := range testcases {
		variables, err := ExtractVariables(tcase.code)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, variables, tcase.expect, tcase.code)
	}
}

func TestFilterMatch(t *testing.T) {
	filter, err := CompileFilter("Amount > 100 && V1 < 0", []string{"Amount", "V1", "V2"})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, filter.Variables(), []string{"Amount", "V1"})

	matched, err := filter.Match(map[string]float64{"Amount": 150, "V1": -0.5})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, matched, true)

	matched, err = filter.Match(map[string]float64{"Amount": 50, "V1": -0.5})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, matched, false)
}

func TestFilterMissingFeature(t *testing.T) {
	filter, err := CompileFilter("Amount > 100", []string{"Amount"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = filter.Match(map[string]float64{"V1": 1})
	if !errors.Is(err, ErrMissingFeature) {
		t.Fatalf("expect ErrMissingFeature, got %v", err)
	}
}

func TestCompileFilterErrors(t *testing.T) {
	if _, err := CompileFilter("Unknown > 1", []string{"Amount"}); err == nil {
		t.Fatal("expect unknown feature error")
	}
	if _, err := CompileFilter("Amount +", []string{"Amount"}); err == nil {
		t.Fatal("expect parse error")
	}
	if _, err := CompileFilter("Amount + 1", []string{"Amount"}); err == nil {
		t.Fatal("expect non-bool error")
	}
}
