package main

import (
	"context"
	"dedupgate/internal/api/handler/v1handler"
	"dedupgate/internal/config"
	"dedupgate/internal/gate"
	"dedupgate/pkg/logger"
	"fmt"
	"io"
	"os"

	"github.com/go-faster/jx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// validateCommand constructs the 'validate' subcommand that runs one
// submission read from a JSON file (or stdin with "-") through the client or
// company gate and prints the response body the API would return.
func validateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "validate {client|company}",
		Short:     "Validates a single submission against the record store",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"client", "company"},
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			file, _ := cmd.Flags().GetString("file")

			body, err := readSubmission(cmd.InOrStdin(), file)
			if err != nil {
				logger.Fatal(ctx, "could not read submission", zap.Error(err))
			}

			st, closeStrg := getStorage(ctx, cfg)
			defer closeStrg()

			clients, companies, err := newValidators(cfg, st, gate.NewOptions(cfg))
			if err != nil {
				logger.Fatal(ctx, "could not create validators", zap.Error(err))
			}
			v := clients
			if args[0] == "company" {
				v = companies
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(runValidation(ctx, v, body))) //nolint: forbidigo
		},
	}

	cmd.Flags().StringP("file", "f", "-", "Path of the JSON submission, - for stdin")

	return cmd
}

func readSubmission(stdin io.Reader, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(stdin) //nolint: wrapcheck
	}

	return os.ReadFile(file) //nolint: wrapcheck
}

// runValidation returns the body the HTTP handler would write for body.
func runValidation(ctx context.Context, v gate.Validator, body []byte) []byte {
	p := v.Profile()

	sub, err := v1handler.DecodeSubmission(body, p)
	if err != nil {
		logger.Error(ctx, "invalid submission", zap.Error(err))

		return v1handler.ErrorBody(v1handler.ErrorMessage(p.Catalog, err))
	}

	out, err := v.Validate(ctx, sub)
	if err != nil {
		logger.Error(ctx, "could not validate submission", zap.Error(err))

		return v1handler.ErrorBody(v1handler.ErrorMessage(p.Catalog, err))
	}

	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	v1handler.EncodeOutcome(e, p, out)

	return append([]byte(nil), e.Bytes()...)
}
