package cli

import (
	"errors"
	"strconv"
	"testing"

	"github.com/spf13/pflag"
	"github.com/wyfcoding/blackscholes/internal/pricing/domain"
)

func parse(t *testing.T, names FlagNames, args ...string) (domain.PricingInput, error) {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	in := AddFlags(fs, names)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("fs.Parse: %v", err)
	}
	return in.Parse()
}

var fullArgs = []string{"-s", "100", "-k", "95", "-t", "0.5", "-r", "0.01", "-u", "0.02", "-v", "0.3", "-c", "P"}

func TestParseShortFlags(t *testing.T) {
	got, err := parse(t, nil, fullArgs...)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := domain.PricingInput{S: 100, K: 95, TimeToExp: 0.5, DiscountRate: 0.01, UndRate: 0.02, Vol: 0.3, CallOrPut: domain.Put}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParseLongFlags(t *testing.T) {
	got, err := parse(t, nil,
		"--stock=100", "--strike=100", "--time-to-exp=1", "--risk-free-rate=0.05",
		"--und-rate=0.05", "--vol=0.2", "--call-or-put=C")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.CallOrPut != domain.Call || got.TimeToExp != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestParseMissingField(t *testing.T) {
	_, err := parse(t, nil, "-s", "100", "-k", "95")

	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want *InputError", err)
	}
	if ie.Kind != MissingField || ie.Field != FieldTimeToExp || ie.Flag != "time-to-exp" {
		t.Errorf("got %+v", ie)
	}
}

func TestParseMalformedValues(t *testing.T) {
	tests := []struct {
		name  string
		flag  string
		value string
		field Field
	}{
		{"stock", "-s", "abc", FieldStock},
		{"time", "-t", "1y", FieldTimeToExp},
		{"vol", "-v", "", FieldVol},
		{"side", "-c", "X", FieldCallOrPut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string(nil), fullArgs...)
			for i := 0; i < len(args); i += 2 {
				if args[i] == tt.flag {
					args[i+1] = tt.value
				}
			}
			_, err := parse(t, nil, args...)

			var ie *InputError
			if !errors.As(err, &ie) {
				t.Fatalf("err = %v, want *InputError", err)
			}
			if ie.Kind != MalformedValue || ie.Field != tt.field || ie.Value != tt.value {
				t.Errorf("got %+v", ie)
			}
		})
	}
}

func TestParseErrorsUnwrap(t *testing.T) {
	args := append([]string(nil), fullArgs...)
	args[1] = "oops"
	_, err := parse(t, nil, args...)
	var ne *strconv.NumError
	if !errors.As(err, &ne) {
		t.Errorf("err = %v, want wrapped *strconv.NumError", err)
	}

	args = append([]string(nil), fullArgs...)
	args[13] = "call"
	_, err = parse(t, nil, args...)
	var pe *domain.ParseCallOrPutError
	if !errors.As(err, &pe) || pe.Error() != "Invalid" {
		t.Errorf("err = %v, want ParseCallOrPutError", err)
	}
}

func TestParseDoesNotValidate(t *testing.T) {
	args := append([]string(nil), fullArgs...)
	args[1] = "-5"
	got, err := parse(t, nil, args...)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.S != -5 {
		t.Errorf("S = %v", got.S)
	}
}

func TestCustomFlagNames(t *testing.T) {
	names := FlagNames{FieldStock: {Long: "spot", Short: "x"}}
	got, err := parse(t, names, "-x", "42", "-k", "40", "-t", "1", "-r", "0", "-u", "0", "-v", "0.1", "-c", "C")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.S != 42 {
		t.Errorf("S = %v", got.S)
	}

	_, err = parse(t, names, "-k", "40")
	var ie *InputError
	if !errors.As(err, &ie) || ie.Flag != "spot" {
		t.Errorf("err = %v, want missing --spot", err)
	}
}

func TestInputErrorMessages(t *testing.T) {
	missing := &InputError{Kind: MissingField, Field: FieldVol, Flag: "vol"}
	if missing.Error() != "missing required option --vol" {
		t.Errorf("Error() = %q", missing.Error())
	}
	if MalformedValue.String() != "MalformedValue" {
		t.Errorf("String() = %q", MalformedValue.String())
	}
}
