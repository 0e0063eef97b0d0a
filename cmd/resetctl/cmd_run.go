package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shandysiswandi/dinebite/internal/resetflow"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Walk through the reset interactively",
	Long: `Prompts for the email, the code and the new password in turn.

At the code prompt, type "resend" to get another code.`,
	RunE: runInteractive,
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	f := newFlow()

	for f.State() != resetflow.StatePasswordReset {
		var err error

		switch f.State() {
		case resetflow.StateIdle:
			email, ok := prompt(in, out, "email: ")
			if !ok {
				return io.ErrUnexpectedEOF
			}
			var code string
			code, err = f.RequestCode(ctx, email)
			if err == nil {
				printResult(cmd, f, code)
			}
		case resetflow.StateCodeRequested:
			otp, ok := prompt(in, out, "code (or resend): ")
			if !ok {
				return io.ErrUnexpectedEOF
			}
			if otp == "resend" {
				var code string
				code, err = f.Resend(ctx)
				if err == nil {
					printResult(cmd, f, code)
				}
				break
			}
			if err = f.VerifyCode(ctx, otp); err == nil {
				printResult(cmd, f, "")
			}
		case resetflow.StateCodeVerified:
			password, ok := prompt(in, out, "new password: ")
			if !ok {
				return io.ErrUnexpectedEOF
			}
			if err = f.CompleteReset(ctx, password); err == nil {
				printResult(cmd, f, "")
			}
		}

		if err != nil {
			fmt.Fprintf(out, "error: %v\n", explain(err))
		}
	}

	return nil
}

func prompt(in *bufio.Scanner, out io.Writer, label string) (string, bool) {
	fmt.Fprint(out, label)
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}
