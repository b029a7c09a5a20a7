package v1

import (
	"math"
	"testing"

	"google.golang.org/grpc/encoding"
)

func TestCodecRegistered(t *testing.T) {
	if encoding.GetCodec(CodecName) == nil {
		t.Fatalf("codec %q not registered", CodecName)
	}
}

func TestCodecNonFinitePrices(t *testing.T) {
	c := msgpackCodec{}
	for _, price := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 10.45} {
		data, err := c.Marshal(&ComputePriceResponse{Price: price})
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		var got ComputePriceResponse
		if err := c.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if got.Error != nil {
			t.Errorf("unexpected error branch %+v", got.Error)
		}
		if math.IsNaN(price) {
			if !math.IsNaN(got.Price) {
				t.Errorf("got %v, want NaN", got.Price)
			}
			continue
		}
		if got.Price != price {
			t.Errorf("got %v, want %v", got.Price, price)
		}
	}
}

func TestCodecErrorBranch(t *testing.T) {
	c := msgpackCodec{}
	data, err := c.Marshal(&ComputePriceResponse{Error: &ValidationError{Kind: "NegativeUndPrice", Value: -5}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got ComputePriceResponse
	if err := c.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.IsOk() || got.Error.Kind != "NegativeUndPrice" || got.Error.Value != -5 {
		t.Errorf("got %+v", got)
	}
}

func TestCodecRequest(t *testing.T) {
	c := msgpackCodec{}
	in := &ComputePriceRequest{Input: &PricingInput{S: 100, K: 95, TimeToExp: 0.5, Vol: 0.2, CallOrPut: "P"}}
	data, err := c.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got ComputePriceRequest
	if err := c.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.GetInput() == nil || *got.GetInput() != *in.Input {
		t.Errorf("got %+v, want %+v", got.GetInput(), in.Input)
	}
}
