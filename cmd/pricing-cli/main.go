package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/wyfcoding/blackscholes/internal/pricing/application"
	"github.com/wyfcoding/blackscholes/internal/pricing/domain"
	"github.com/wyfcoding/blackscholes/internal/pricing/infrastructure/client"
	"github.com/wyfcoding/blackscholes/internal/pricing/interfaces/cli"
	"github.com/wyfcoding/blackscholes/pkg/grpcclient"
	"github.com/wyfcoding/blackscholes/pkg/logger"
)

const programName = "pricing-cli"

// 退出码
const (
	exitOK         = 0
	exitFailure    = 1
	exitInputError = 2
)

func main() {
	if err := logger.Init(logger.Config{Level: "warn", Format: "text", Output: "stderr"}); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	inputs := cli.AddFlags(fs, cli.DefaultFlagNames())
	addr := fs.String("addr", "", "remote pricing server, e.g. 127.0.0.1:9000; prices locally when empty")
	hello := fs.String("hello", "", "send hello NAME and exit")
	cdfName := fs.String("cdf", domain.CDFApprox, "normal CDF for local pricing: approx or exact")
	precision := fs.Int32("precision", 4, "decimal places of the printed price")
	timeout := fs.Duration("timeout", 5*time.Second, "remote call timeout")
	help := fs.BoolP("help", "h", false, "print this help menu")

	usage := func(w io.Writer) {
		fmt.Fprintf(w, "Usage: %s [options]\n%s", programName, fs.FlagUsages())
	}

	if err := fs.Parse(args); err != nil {
		if *help {
			usage(stdout)
			return exitOK
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		usage(stderr)
		return exitInputError
	}
	if *help {
		usage(stdout)
		return exitOK
	}

	api, closeFn, err := newPricingAPI(*addr, *cdfName, *timeout)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitInputError
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if fs.Changed("hello") {
		msg, err := api.Hello(ctx, *hello)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitFailure
		}
		fmt.Fprintln(stdout, msg)
		return exitOK
	}

	input, err := inputs.Parse()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		usage(stderr)
		return exitInputError
	}
	fmt.Fprintf(stdout, "%+v\n", input)

	price, err := api.ComputePrice(ctx, input)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			fmt.Fprintf(stderr, "validation failed: %v\n", ve)
		} else {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return exitFailure
	}
	fmt.Fprintln(stdout, formatPrice(price, *precision))
	return exitOK
}

func newPricingAPI(addr, cdfName string, timeout time.Duration) (domain.PricingAPI, func(), error) {
	if addr == "" {
		cdf, err := domain.CDFByName(cdfName)
		if err != nil {
			return nil, nil, err
		}
		return application.NewPricingService(domain.NewPricer(domain.WithCDF(cdf))), func() {}, nil
	}

	c, err := client.NewPricingClient(grpcclient.ClientConfig{Target: addr, RequestTimeout: timeout})
	if err != nil {
		return nil, nil, err
	}
	return c, func() { _ = c.Close() }, nil
}

// formatPrice 按精度四舍五入，非有限值原样输出
func formatPrice(price float64, precision int32) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return strconv.FormatFloat(price, 'g', -1, 64)
	}
	return decimal.NewFromFloat(price).StringFixed(precision)
}
