package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jiaming2012/put-finder/src/cmd/put_finder/run"
	"github.com/jiaming2012/put-finder/src/eventmodels"
	"github.com/jiaming2012/put-finder/src/eventservices"
	"github.com/jiaming2012/put-finder/src/logger"
	"github.com/jiaming2012/put-finder/src/report"
	"github.com/jiaming2012/put-finder/src/screener"
	"github.com/jiaming2012/put-finder/src/utils"
)

type RunArgs struct {
	Symbol    eventmodels.StockSymbol
	Params    eventmodels.ScreenParams
	Provider  eventmodels.DataProvider
	CredsPath string
	InputPath string
	Now       time.Time
}

type RunResult struct {
	RunID    uuid.UUID
	Provider eventmodels.DataProvider
	Result   eventmodels.ScreenResult
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/put_finder/main.go AAPL --pop-min 70 --pop-max 90 --min-return 20 --dte-max 60",
	Short: "Find cash secured puts with a high probability of profit and a high annualized return",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		logLevel, err := cmd.Flags().GetString("log-level")
		if err != nil {
			log.Fatalf("error getting log-level: %v", err)
		}

		logFormat, err := cmd.Flags().GetString("log-format")
		if err != nil {
			log.Fatalf("error getting log-format: %v", err)
		}

		if err := logger.Setup(logLevel, logFormat); err != nil {
			log.Fatalf("error setting up logger: %v", err)
		}

		if err := utils.InitEnvironmentVariables(goEnv); err != nil {
			log.Fatalf("error loading environment variables: %v", err)
		}

		params := eventmodels.NewDefaultScreenParams()

		if params.PopMin, err = cmd.Flags().GetFloat64("pop-min"); err != nil {
			log.Fatalf("error getting pop-min: %v", err)
		}

		if params.PopMax, err = cmd.Flags().GetFloat64("pop-max"); err != nil {
			log.Fatalf("error getting pop-max: %v", err)
		}

		if params.MinAnnualReturn, err = cmd.Flags().GetFloat64("min-return"); err != nil {
			log.Fatalf("error getting min-return: %v", err)
		}

		if params.MaxDTE, err = cmd.Flags().GetInt("dte-max"); err != nil {
			log.Fatalf("error getting dte-max: %v", err)
		}

		providerFlag, err := cmd.Flags().GetString("provider")
		if err != nil {
			log.Fatalf("error getting provider: %v", err)
		}

		provider, err := eventmodels.ParseDataProvider(providerFlag)
		if err != nil {
			log.Fatalf("error parsing provider: %v", err)
		}

		credsPath, err := cmd.Flags().GetString("creds")
		if err != nil {
			log.Fatalf("error getting creds: %v", err)
		}

		inputPath, err := cmd.Flags().GetString("input")
		if err != nil {
			log.Fatalf("error getting input: %v", err)
		}

		format, err := cmd.Flags().GetString("format")
		if err != nil {
			log.Fatalf("error getting format: %v", err)
		}

		outDir, err := cmd.Flags().GetString("outDir")
		if err != nil {
			log.Fatalf("error getting outDir: %v", err)
		}

		ctx := context.Background()

		shutdown, err := utils.SetupOTelSDK(ctx, "put_finder")
		if err != nil {
			log.Fatalf("error setting up telemetry: %v", err)
		}

		symbol := eventmodels.NewStockSymbol(args[0])

		result, err := Run(ctx, RunArgs{
			Symbol:    symbol,
			Params:    params,
			Provider:  provider,
			CredsPath: credsPath,
			InputPath: inputPath,
		})

		if shutdownErr := shutdown(ctx); shutdownErr != nil {
			log.Warnf("error shutting down telemetry: %v", shutdownErr)
		}

		if err != nil {
			if errors.Is(err, eventmodels.ErrTickerNotFound) {
				log.Fatalf("Could not find ticker: %s", symbol)
			}

			log.Fatalf("Error: %v", err)
		}

		if err := writeOutput(result, params, format, outDir, symbol); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func writeOutput(result RunResult, params eventmodels.ScreenParams, format, outDir string, symbol eventmodels.StockSymbol) error {
	switch format {
	case "table":
		return report.RenderTable(os.Stdout, result.Result, params.MinAnnualReturn)
	case "json":
		return report.RenderJSON(os.Stdout, result.Result)
	case "csv":
		csvPath, err := report.ExportToCsv(outDir, result.Result, fmt.Sprintf("%s_puts", symbol))
		if err != nil {
			return err
		}

		fmt.Println("CSV file written to: ", csvPath)
		return nil
	}

	return fmt.Errorf("writeOutput: unknown format %q", format)
}

func Run(ctx context.Context, args RunArgs) (RunResult, error) {
	if err := args.Symbol.Validate(); err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	if err := args.Params.Validate(); err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	runID := uuid.New()

	ctx, span := otel.Tracer("put_finder").Start(ctx, "Run")
	defer span.End()

	span.SetAttributes(
		attribute.String("run_id", runID.String()),
		attribute.String("symbol", args.Symbol.String()),
	)

	logEntry := log.WithContext(ctx).WithFields(log.Fields{
		"run_id":   runID,
		"symbol":   args.Symbol,
		"provider": args.Provider,
	})

	now := args.Now
	if now.IsZero() {
		now = time.Now()
	}

	fetcher, err := run.NewFetcher(ctx, run.FetcherArgs{
		Provider:      args.Provider,
		CredsPath:     args.CredsPath,
		InputPath:     args.InputPath,
		MaxExpiration: time.Date(now.Year(), now.Month(), now.Day()+args.Params.MaxDTE, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	quotes, err := eventservices.FetchPutQuotes(ctx, fetcher, args.Symbol, args.Params.MaxDTE, now)
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	result := screener.Screen(quotes, args.Params, now)

	logEntry.Infof("screened %d puts: %d candidates, %d accepted, %d below threshold", result.InputCount, result.CandidateCount, len(result.Accepted), result.BelowThresholdCount)

	if err := utils.RecordScreenMetrics(ctx, fetcher.Name(), args.Symbol, result); err != nil {
		logEntry.Warnf("failed to record metrics: %v", err)
	}

	return RunResult{
		RunID:    runID,
		Provider: fetcher.Name(),
		Result:   result,
	}, nil
}

func main() {
	runCmd.PersistentFlags().Float64("pop-min", eventmodels.DefaultPopMin, "Minimum probability of profit, in percent.")
	runCmd.PersistentFlags().Float64("pop-max", eventmodels.DefaultPopMax, "Maximum probability of profit, in percent.")
	runCmd.PersistentFlags().Float64("min-return", eventmodels.DefaultMinAnnualReturn, "Minimum annualized return, in percent.")
	runCmd.PersistentFlags().Int("dte-max", eventmodels.DefaultMaxDTE, "Maximum number of days to expiration.")
	runCmd.PersistentFlags().String("provider", string(eventmodels.TDAmeritradeProvider), "The option chain provider: tdameritrade, tradier, polygon or csv.")
	runCmd.PersistentFlags().String("creds", "creds.yaml", "The credentials file written by get_token.")
	runCmd.PersistentFlags().String("input", "", "The quotes file read by the csv provider.")
	runCmd.PersistentFlags().String("format", "table", "The output format: table, json or csv.")
	runCmd.PersistentFlags().String("outDir", ".", "The directory to write csv output to.")
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	runCmd.PersistentFlags().String("log-level", "info", "The log level.")
	runCmd.PersistentFlags().String("log-format", logger.TextFormat, "The log format: text or json.")

	runCmd.Execute()
}
