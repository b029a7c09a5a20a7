package grpc

import (
	"errors"
	"testing"

	v1 "github.com/wyfcoding/blackscholes/go-api/pricing/v1"
	"github.com/wyfcoding/blackscholes/internal/pricing/domain"
)

func TestInputConversion(t *testing.T) {
	in := domain.PricingInput{S: 100, K: 90, TimeToExp: 0.5, DiscountRate: 0.01, UndRate: 0.02, Vol: 0.3, CallOrPut: domain.Put}

	got, err := ToDomainInput(FromDomainInput(in))
	if err != nil {
		t.Fatalf("ToDomainInput: %v", err)
	}
	if got != in {
		t.Errorf("got %+v, want %+v", got, in)
	}

	_, err = ToDomainInput(&v1.PricingInput{CallOrPut: "call"})
	var pe *domain.ParseCallOrPutError
	if !errors.As(err, &pe) || pe.Token != "call" {
		t.Errorf("err = %v, want ParseCallOrPutError", err)
	}

	if _, err := ToDomainInput(nil); !errors.Is(err, ErrMissingInput) {
		t.Errorf("err = %v, want ErrMissingInput", err)
	}
}

func TestResponseConversion(t *testing.T) {
	resp, err := ToResponse(1.25, nil)
	if err != nil || resp.Error != nil || resp.Price != 1.25 {
		t.Fatalf("ToResponse ok = %+v, %v", resp, err)
	}

	resp, err = ToResponse(0, &domain.ValidationError{Kind: domain.NegativeStrikePrice, Value: -3})
	if err != nil {
		t.Fatalf("ToResponse: %v", err)
	}
	if resp.Error == nil || resp.Error.Kind != "NegativeStrikePrice" || resp.Error.Value != -3 {
		t.Errorf("Error = %+v", resp.Error)
	}

	if _, err := ToResponse(0, errors.New("boom")); err == nil {
		t.Error("expected non-validation error to pass through")
	}

	if _, err := FromResponse(&v1.ComputePriceResponse{Error: &v1.ValidationError{Kind: "Bogus"}}); err == nil {
		t.Error("expected unknown kind to fail")
	}
	if _, err := FromResponse(nil); err == nil {
		t.Error("expected nil response to fail")
	}
}
