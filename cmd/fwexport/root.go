package main

import (
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	flagConfig   string
	flagUsername string
	flagToken    string
	flagSession  string
	flagJWT      string
	flagWorkers  int
	flagQuiet    bool
	flagCache    string
	flagOut      string
)

var rootCmd = &cobra.Command{
	Use:   "fwexport",
	Short: "Export Filmweb ratings to IMDb import CSV files",
	Long: `fwexport - export a Filmweb user's rated and watchlisted titles
to CSV files in the IMDb ratings-import format.

Each title is matched against IMDb through a ranked search over its
localized name variants and corroborated by runtime; uncertain matches
are confirmed interactively before export.

Authentication uses the _fwuser_token, _fwuser_sessionId and JWT
cookies of a logged-in browser session, passed as flags, a config
file, or FWEXPORT_* environment variables (a .env file is honored).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "fwexport.toml", "Path to config file")
	rootCmd.Flags().StringVarP(&flagUsername, "username", "u", "", "Filmweb username (scraped from settings when omitted)")
	rootCmd.Flags().StringVarP(&flagToken, "token", "t", "", "_fwuser_token cookie value")
	rootCmd.Flags().StringVarP(&flagSession, "session", "s", "", "_fwuser_sessionId cookie value")
	rootCmd.Flags().StringVarP(&flagJWT, "jwt", "j", "", "JWT cookie value")
	rootCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent workers per stage (1-8)")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print the final summary")
	rootCmd.Flags().StringVar(&flagCache, "cache", "", "Path to sqlite lookup cache (empty disables caching)")
	rootCmd.Flags().StringVar(&flagOut, "out", "", "Directory for the export CSV files")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("fwexport {{.Version}}\n")
}
