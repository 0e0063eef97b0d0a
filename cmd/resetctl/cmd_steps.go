package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/shandysiswandi/dinebite/internal/resetflow"
	"github.com/spf13/cobra"
)

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Ask the server to email a reset code",
	RunE:  runRequest,
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the emailed code",
	RunE:  runVerify,
}

var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Set the new password using the verified code",
	RunE:  runComplete,
}

var resendCmd = &cobra.Command{
	Use:   "resend",
	Short: "Request another code for the same email",
	RunE:  runResend,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved reset progress",
	RunE:  runStatus,
}

func init() {
	requestCmd.Flags().String("email", "", "account email")
	_ = requestCmd.MarkFlagRequired("email")

	verifyCmd.Flags().String("otp", "", "6-digit code from the email")
	_ = verifyCmd.MarkFlagRequired("otp")

	completeCmd.Flags().String("password", "", "new password (8-72 characters)")
	_ = completeCmd.MarkFlagRequired("password")
}

func newFlow() *resetflow.Flow {
	return resetflow.New(baseURL, resetflow.WithHTTPClient(&http.Client{Timeout: timeout}))
}

// loadFlow restores the flow from the session file. A missing file means a
// fresh flow.
func loadFlow() (*resetflow.Flow, error) {
	f := newFlow()

	raw, err := os.ReadFile(sessionPath)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, err
	}

	var s resetflow.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("read session %s: %w", sessionPath, err)
	}
	if err := f.Restore(s); err != nil {
		return nil, fmt.Errorf("read session %s: %w", sessionPath, err)
	}

	return f, nil
}

func saveFlow(f *resetflow.Flow) error {
	if f.State() == resetflow.StatePasswordReset {
		err := os.Remove(sessionPath)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	raw, err := json.Marshal(f.Session())
	if err != nil {
		return err
	}

	return os.WriteFile(sessionPath, raw, 0o600)
}

func runRequest(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")

	// request always starts over
	f := newFlow()
	code, err := f.RequestCode(cmd.Context(), email)
	if err != nil {
		return explain(err)
	}

	printResult(cmd, f, code)
	return saveFlow(f)
}

func runResend(cmd *cobra.Command, _ []string) error {
	f, err := loadFlow()
	if err != nil {
		return err
	}

	code, err := f.Resend(cmd.Context())
	if err != nil {
		return explain(err)
	}

	printResult(cmd, f, code)
	return saveFlow(f)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	otp, _ := cmd.Flags().GetString("otp")

	f, err := loadFlow()
	if err != nil {
		return err
	}

	if err := f.VerifyCode(cmd.Context(), otp); err != nil {
		return explain(err)
	}

	printResult(cmd, f, "")
	return saveFlow(f)
}

func runComplete(cmd *cobra.Command, _ []string) error {
	password, _ := cmd.Flags().GetString("password")

	f, err := loadFlow()
	if err != nil {
		return err
	}

	if err := f.CompleteReset(cmd.Context(), password); err != nil {
		return explain(err)
	}

	printResult(cmd, f, "")
	return saveFlow(f)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	f, err := loadFlow()
	if err != nil {
		return err
	}

	s := f.Session()
	fmt.Fprintf(cmd.OutOrStdout(), "state: %s\n", s.State)
	if s.Email != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "email: %s\n", s.Email)
	}

	return nil
}

func printResult(cmd *cobra.Command, f *resetflow.Flow, code string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, f.Message())
	if code != "" {
		fmt.Fprintf(out, "code: %s\n", code)
	}
	fmt.Fprintf(out, "state: %s\n", f.State())
}

func explain(err error) error {
	if errors.Is(err, resetflow.ErrInvalidTransition) {
		return errors.New("that step is not available now, check 'resetctl status'")
	}

	var apiErr *resetflow.APIError
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.Message)
	}

	return err
}
