package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hudsonrx/claimsight/internal/auth"
	"github.com/hudsonrx/claimsight/internal/config"
	"github.com/hudsonrx/claimsight/internal/exitcode"
	"github.com/hudsonrx/claimsight/internal/logging"
	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/notify"
)

var cfg config.Config

var (
	cfgFile   string
	verbose   bool
	userEmail string
	password  string
)

var rootCmd = &cobra.Command{
	Use:   "claimsight",
	Short: "340B pharmacy claims analytics",
	Long: "Loads the pharmacy claims ledger and produces role-scoped revenue, " +
		"unfilled-script, and physician coverage reports with de-identified exports.",
	PersistentPreRunE: loadConfig,
}

func init() {
	cfg = config.Default()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Path to YAML config file")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.BoolVar(&verbose, "verbose", false, "Enable debug logging")
	pf.StringVar(&userEmail, "email", "", "Acting user email (required)")
	pf.StringVar(&password, "password", os.Getenv("APP_PASSWORD"), "Shared app password (or set APP_PASSWORD)")
	pf.StringVar(&cfg.ClaimsFile, "claims", "", "Path to claims ledger CSV")
	pf.StringVar(&cfg.RosterFile, "roster", "", "Path to physician roster CSV")
	pf.StringVar(&cfg.StartDate, "start-date", config.DefaultStartDate, "Analysis floor date (YYYY-MM-DD)")
}

// loadConfig merges the optional config file under values already set by
// flags and the environment. Flags win, then env, then file, then defaults.
func loadConfig(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		fileCfg := config.Default()
		if err := fileCfg.LoadFromFile(cfgFile); err != nil {
			return err
		}
		mergeUnset(cmd, &fileCfg)
	}
	cfg.LoadFromEnv()
	return nil
}

func mergeUnset(cmd *cobra.Command, fileCfg *config.Config) {
	if !cmd.Flags().Changed("claims") && fileCfg.ClaimsFile != "" {
		cfg.ClaimsFile = fileCfg.ClaimsFile
	}
	if !cmd.Flags().Changed("roster") && fileCfg.RosterFile != "" {
		cfg.RosterFile = fileCfg.RosterFile
	}
	if !cmd.Flags().Changed("start-date") && fileCfg.StartDate != "" {
		cfg.StartDate = fileCfg.StartDate
	}
	if !cmd.Flags().Changed("log-format") && fileCfg.LogFormat != "" {
		cfg.LogFormat = fileCfg.LogFormat
	}
	if fileCfg.PaymentsFile != "" {
		cfg.PaymentsFile = fileCfg.PaymentsFile
	}
	if fileCfg.OutputDir != "" {
		cfg.OutputDir = fileCfg.OutputDir
	}
	if fileCfg.NPICachePath != "" {
		cfg.NPICachePath = fileCfg.NPICachePath
	}
	if fileCfg.ShareRate != 0 {
		cfg.ShareRate = fileCfg.ShareRate
	}
	if fileCfg.EstPaidPerInfusion != 0 {
		cfg.EstPaidPerInfusion = fileCfg.EstPaidPerInfusion
	}
	if len(fileCfg.AdminEmails) > 0 {
		cfg.AdminEmails = fileCfg.AdminEmails
	}
	if fileCfg.BizDevUsers != "" {
		cfg.BizDevUsers = fileCfg.BizDevUsers
	}
	if fileCfg.ViewerUsers != "" {
		cfg.ViewerUsers = fileCfg.ViewerUsers
	}
	if fileCfg.SMTP.Host != "" {
		cfg.SMTP = fileCfg.SMTP
	}
}

// authenticate resolves the acting user and checks the shared password.
// Exits with AuthError on failure so scripts can distinguish access
// problems from data problems.
func authenticate(log zerolog.Logger) model.Session {
	if userEmail == "" {
		log.Error().Msg("--email is required")
		os.Exit(exitcode.UsageError)
	}
	users, err := cfg.Users()
	if err != nil {
		log.Error().Err(err).Msg("user directory misconfigured")
		os.Exit(exitcode.UsageError)
	}

	var notifier auth.Notifier
	mailer := notify.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username,
		cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.To, log)
	if mailer.Enabled() {
		notifier = mailer
	}

	svc := auth.NewService(users, cfg.AppPassword, cfg.SkipPassword, notifier, log)
	sess, err := svc.Login(userEmail, password)
	if err != nil {
		log.Error().Err(err).Msg("login failed")
		os.Exit(exitcode.AuthError)
	}
	return sess
}

func newLogger() zerolog.Logger {
	return logging.Setup(cfg.LogFormat, verbose)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcode.UsageError)
	}
}
