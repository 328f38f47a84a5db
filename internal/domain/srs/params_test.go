package srs

import (
	"testing"
)

func TestNewDefaultParams(t *testing.T) {
	params := NewDefaultParams()

	if params.Demotion != 2 {
		t.Errorf("expected default demotion 2, got %d", params.Demotion)
	}
	if params.Promotion != 1 {
		t.Errorf("expected default promotion 1, got %d", params.Promotion)
	}
	if params.Floor != 0 {
		t.Errorf("expected floor 0, got %d", params.Floor)
	}
}

func TestNewParams(t *testing.T) {
	params := NewParams(ParamsConfig{Demotion: 3})
	if params.Demotion != 3 {
		t.Errorf("expected overridden demotion 3, got %d", params.Demotion)
	}
	if params.Promotion != 1 {
		t.Errorf("expected default promotion to be kept, got %d", params.Promotion)
	}

	params = NewParams(ParamsConfig{})
	if *params != *NewDefaultParams() {
		t.Errorf("zero config should keep defaults, got %+v", params)
	}
}
