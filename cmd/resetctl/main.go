// Command resetctl walks an account through the OTP password reset against a
// running dinebite API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL     string
	sessionPath string
	timeout     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "resetctl",
	Short: "Reset a dinebite password with an emailed code",
	Long: `resetctl drives the three reset steps against the dinebite API.

The one-shot commands keep their progress in a session file so they can be
run one after another:
  resetctl request --email ana@example.com
  resetctl verify --otp 123456
  resetctl complete --password 'new-secret'

Use "resetctl run" for an interactive prompt instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", envOr("DINEBITE_URL", "http://localhost:8080"), "dinebite API base URL")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", ".resetctl.json", "file holding the reset progress")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "per-request timeout")

	rootCmd.AddCommand(requestCmd, verifyCmd, completeCmd, resendCmd, statusCmd, runCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
