package houghlite

import (
	"errors"
	"testing"
)

// TestDefaultParamsValid checks every default parameter set validates
func TestDefaultParamsValid(t *testing.T) {

	if err := DefaultHoughParams().Validate(); err != nil {
		t.Errorf("DefaultHoughParams failed validation: %v", err)
	}

	if err := DefaultPeakParams().Validate(); err != nil {
		t.Errorf("DefaultPeakParams failed validation: %v", err)
	}

	if err := DefaultProcessingParams().Validate(); err != nil {
		t.Errorf("DefaultProcessingParams failed validation: %v", err)
	}
}

// TestHoughParamsValidate checks rejection of unusable accumulator
// parameters
func TestHoughParamsValidate(t *testing.T) {

	cases := []struct {
		name   string
		modify func(*HoughParams)
	}{
		{"zero phi bins", func(p *HoughParams) { p.NbinPhi = 0 }},
		{"zero qpt bins", func(p *HoughParams) { p.NbinQpt = 0 }},
		{"zero square size", func(p *HoughParams) { p.SquareSize = 0 }},
		{"negative tolerance", func(p *HoughParams) { p.Tolerance = -1 }},
	}

	for _, c := range cases {

		p := DefaultHoughParams()
		c.modify(&p)

		if err := p.Validate(); !errors.Is(err, ErrConfiguration) {
			t.Errorf("%s: expected ErrConfiguration, got %v", c.name, err)
		}
	}

	// zero tolerance is a valid degenerate configuration
	p := DefaultHoughParams()
	p.Tolerance = 0

	if err := p.Validate(); err != nil {
		t.Errorf("Zero tolerance must validate, got %v", err)
	}
}

// TestPeakParamsValidate checks rejection of unusable detection parameters
func TestPeakParamsValidate(t *testing.T) {

	cases := []struct {
		name   string
		modify func(*PeakParams)
	}{
		{"negative absolute threshold", func(p *PeakParams) { p.ThresholdAbs = -1 }},
		{"relative threshold above 1", func(p *PeakParams) { p.ThresholdRel = 1.5 }},
		{"zero minimum distance", func(p *PeakParams) { p.MinDistance = 0 }},
		{"negative sigma", func(p *PeakParams) { p.SmoothSigma = -1 }},
	}

	for _, c := range cases {

		p := DefaultPeakParams()
		c.modify(&p)

		if err := p.Validate(); !errors.Is(err, ErrConfiguration) {
			t.Errorf("%s: expected ErrConfiguration, got %v", c.name, err)
		}
	}
}

// TestProcessingParamsValidate checks rejection of unusable processing
// parameters
func TestProcessingParamsValidate(t *testing.T) {

	cases := []struct {
		name   string
		modify func(*ProcessingParams)
	}{
		{"zero total slices", func(p *ProcessingParams) { p.TotalSlices = 0 }},
		{"slice below sentinel", func(p *ProcessingParams) { p.SliceList = []int{-2} }},
		{"slice beyond total", func(p *ProcessingParams) { p.SliceList = []int{32} }},
		{"negative minimum hits", func(p *ProcessingParams) { p.MinHits = -1 }},
		{"empty vz range", func(p *ProcessingParams) { p.VzRange = [2]float64{5, 5} }},
	}

	for _, c := range cases {

		p := DefaultProcessingParams()
		c.modify(&p)

		if err := p.Validate(); !errors.Is(err, ErrConfiguration) {
			t.Errorf("%s: expected ErrConfiguration, got %v", c.name, err)
		}
	}
}
