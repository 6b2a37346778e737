package main

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/put-finder/src/eventmodels"
	"github.com/jiaming2012/put-finder/src/eventservices"
	"github.com/jiaming2012/put-finder/src/logger"
	"github.com/jiaming2012/put-finder/src/utils"
)

type RunArgs struct {
	ClientID    string
	RedirectURI string
	CredsPath   string
	BaseURL     string
	In          io.Reader
	Out         io.Writer
}

type RunResult struct {
	CredsPath string
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/get_token/main.go -c <client id> -p creds.yaml",
	Short: "Authorize with TD Ameritrade and store a refresh token",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		logLevel, err := cmd.Flags().GetString("log-level")
		if err != nil {
			log.Fatalf("error getting log-level: %v", err)
		}

		if err := logger.Setup(logLevel, logger.TextFormat); err != nil {
			log.Fatalf("error setting up logger: %v", err)
		}

		if err := utils.InitEnvironmentVariables(goEnv); err != nil {
			log.Fatalf("error loading environment variables: %v", err)
		}

		clientID, err := cmd.Flags().GetString("client-id")
		if err != nil {
			log.Fatalf("error getting client-id: %v", err)
		}

		if clientID == "" {
			if clientID, err = utils.GetEnv("TD_CLIENT_ID"); err != nil {
				log.Fatalf("a client id is required: pass --client-id or set TD_CLIENT_ID")
			}
		}

		redirectURI, err := cmd.Flags().GetString("uri")
		if err != nil {
			log.Fatalf("error getting uri: %v", err)
		}

		if redirectURI == "" {
			redirectURI = utils.GetEnvOrDefault("TD_REDIRECT_URI", eventservices.TDAmeritradeDefaultRedirect)
		}

		credsPath, err := cmd.Flags().GetString("path")
		if err != nil {
			log.Fatalf("error getting path: %v", err)
		}

		result, err := Run(context.Background(), RunArgs{
			ClientID:    clientID,
			RedirectURI: redirectURI,
			CredsPath:   credsPath,
			BaseURL:     utils.GetEnvOrDefault("TDA_BASE_URL", eventservices.TDAmeritradeBaseURL),
			In:          os.Stdin,
			Out:         os.Stdout,
		})
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		fmt.Println("Credentials written to: ", result.CredsPath)
	},
}

// Run walks the user through the authorization code flow and stores the resulting
// refresh token next to the raw client id.
func Run(ctx context.Context, args RunArgs) (RunResult, error) {
	cfg := eventservices.NewTDAmeritradeOAuthConfig(args.ClientID, args.RedirectURI, args.BaseURL)

	fmt.Fprintln(args.Out, "Go to the following URL to authorize access:")
	fmt.Fprintln(args.Out, eventservices.AuthorizationURL(cfg))
	fmt.Fprint(args.Out, "Paste the URL you were redirected to: ")

	redirect, err := utils.ReadLine(args.In)
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: failed to read redirect url: %w", err)
	}

	code, err := eventservices.ParseAuthorizationCode(redirect)
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	refreshToken, err := eventservices.ExchangeRefreshToken(ctx, cfg, code)
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	if err := utils.SaveCredentials(args.CredsPath, eventmodels.Credentials{
		ClientID:     args.ClientID,
		RefreshToken: refreshToken,
	}); err != nil {
		return RunResult{}, fmt.Errorf("Run: %w", err)
	}

	log.Infof("saved refresh token for %s", args.ClientID)

	return RunResult{CredsPath: args.CredsPath}, nil
}

func main() {
	runCmd.PersistentFlags().StringP("client-id", "c", "", "The TD Ameritrade app client id. Defaults to TD_CLIENT_ID.")
	runCmd.PersistentFlags().StringP("path", "p", "creds.yaml", "Where to write the credentials file.")
	runCmd.PersistentFlags().StringP("uri", "u", "", "The app redirect uri. Defaults to TD_REDIRECT_URI, then https://localhost:8080.")
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	runCmd.PersistentFlags().String("log-level", "info", "The log level.")

	runCmd.Execute()
}
