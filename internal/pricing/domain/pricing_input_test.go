package domain

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func sampleInput() PricingInput {
	return PricingInput{
		S:            100,
		K:            100,
		TimeToExp:    1,
		DiscountRate: 0.05,
		UndRate:      0.05,
		Vol:          0.2,
		CallOrPut:    Call,
	}
}

func TestValidateAcceptsNonNegativePrices(t *testing.T) {
	for _, tc := range []struct{ s, k float64 }{
		{0, 0},
		{100, 0},
		{0, 100},
		{42.5, 17.25},
		{math.MaxFloat64, math.SmallestNonzeroFloat64},
	} {
		in := sampleInput()
		in.S, in.K = tc.s, tc.k
		got, err := in.Validate()
		if err != nil {
			t.Fatalf("s=%v k=%v: unexpected error %v", tc.s, tc.k, err)
		}
		if got != in {
			t.Fatalf("s=%v k=%v: input changed to %+v", tc.s, tc.k, got)
		}
	}
}

func TestValidateNegativeSpotWinsOverStrike(t *testing.T) {
	for _, k := range []float64{-10, 0, 100} {
		in := sampleInput()
		in.S, in.K = -5, k
		_, err := in.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("k=%v: expected ValidationError, got %v", k, err)
		}
		if verr.Kind != NegativeUndPrice || verr.Value != -5 {
			t.Fatalf("k=%v: got %+v", k, verr)
		}
	}
}

func TestValidateNegativeStrike(t *testing.T) {
	in := sampleInput()
	in.K = -1.5
	_, err := in.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Kind != NegativeStrikePrice || verr.Value != -1.5 {
		t.Fatalf("got %+v", verr)
	}
	if verr.Error() != "NegativeStrikePrice(-1.5)" {
		t.Fatalf("unexpected message %q", verr.Error())
	}
}

func TestParseYears(t *testing.T) {
	y, err := ParseYears("0.25")
	if err != nil || y != 0.25 {
		t.Fatalf("got %v, %v", y, err)
	}

	_, err = ParseYears("soon")
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Fatalf("expected *strconv.NumError, got %T", err)
	}
	if _, direct := err.(*strconv.NumError); !direct {
		t.Fatalf("parse error should not be wrapped: %T", err)
	}
}

func TestParseValidationKind(t *testing.T) {
	for _, k := range []ValidationKind{NegativeUndPrice, NegativeStrikePrice} {
		got, err := ParseValidationKind(string(k))
		if err != nil || got != k {
			t.Fatalf("%s: got %v, %v", k, got, err)
		}
	}
	if _, err := ParseValidationKind("NegativeVol"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
