// Package shell is the interactive read-eval-print loop in front of a
// session. Control directives (reset, user switch, exit) are answered
// locally; everything else becomes a model turn.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/castlebay/supportdesk/agent/contract"
	sessionx "github.com/castlebay/supportdesk/agent/session"
)

// maxInputLine bounds one pasted request; bufio.Scanner's default 64KB cap
// would drop the line and end the loop.
const maxInputLine = 1 << 20

type Shell struct {
	session    *sessionx.Session
	in         io.Reader
	out        io.Writer
	knownUsers func() []string
}

func New(session *sessionx.Session, in io.Reader, out io.Writer, knownUsers func() []string) *Shell {
	return &Shell{
		session:    session,
		in:         in,
		out:        out,
		knownUsers: knownUsers,
	}
}

// Run drives the loop until exit or EOF. Turn-level failures are reported
// and the loop continues; the session stays alive for retry.
func (sh *Shell) Run(ctx context.Context) error {
	sh.banner()

	scanner := bufio.NewScanner(sh.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxInputLine)
	for {
		fmt.Fprintf(sh.out, "\n[%s] You: ", sh.session.UserID())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				fmt.Fprintf(sh.out, "\nInput error: %v\n", err)
				return err
			}
			fmt.Fprintln(sh.out, "\nGoodbye!")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		done, err := sh.dispatch(ctx, line)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// dispatch handles one input line. The bool result reports exit.
func (sh *Shell) dispatch(ctx context.Context, line string) (bool, error) {
	switch {
	case line == "exit" || line == "quit":
		fmt.Fprintln(sh.out, "Goodbye!")
		return true, nil

	case line == "reset":
		sh.session.Reset()
		fmt.Fprintln(sh.out, "Conversation reset.")
		return false, nil

	case strings.HasPrefix(line, "user "):
		userID := strings.TrimSpace(strings.TrimPrefix(line, "user "))
		if !sh.userExists(userID) {
			fmt.Fprintf(sh.out, "User not found: %s\n", userID)
			fmt.Fprintf(sh.out, "Available users: %s\n", strings.Join(sh.knownUsers(), ", "))
			return false, nil
		}
		if err := sh.session.SwitchUser(userID); err != nil {
			fmt.Fprintf(sh.out, "Could not switch user: %v\n", err)
			return false, nil
		}
		fmt.Fprintf(sh.out, "Switched to user: %s (conversation reset)\n", userID)
		return false, nil

	default:
		reply, err := sh.session.HandleTurn(ctx, line)
		if err != nil {
			sh.reportTurnFailure(err)
			return false, nil
		}
		fmt.Fprintf(sh.out, "\nAssistant: %s\n", reply)
		return false, nil
	}
}

// userExists checks a switch target against the known-user hint. Without a
// hint source every id is accepted; the stdio gateway has no user listing.
func (sh *Shell) userExists(userID string) bool {
	if sh.knownUsers == nil {
		return userID != ""
	}
	for _, id := range sh.knownUsers() {
		if id == userID {
			return true
		}
	}
	return false
}

func (sh *Shell) reportTurnFailure(err error) {
	log.Error().Err(err).Msg("turn failed")
	switch {
	case errors.Is(err, contractx.ErrRoundTripLimit):
		fmt.Fprintln(sh.out, "The assistant needed too many operation round-trips for that request. Please try rephrasing.")
	case errors.Is(err, contractx.ErrConnection):
		fmt.Fprintln(sh.out, "Could not reach the tool server. Please try again.")
	case errors.Is(err, contractx.ErrEmptyMessage):
		// blank input, nothing to report
	default:
		fmt.Fprintf(sh.out, "Something went wrong: %v\n", err)
	}
}

func (sh *Shell) banner() {
	fmt.Fprintln(sh.out, strings.Repeat("=", 60))
	fmt.Fprintln(sh.out, "  Customer Support Assistant")
	fmt.Fprintln(sh.out, strings.Repeat("=", 60))
	fmt.Fprintln(sh.out, "\nAvailable commands:")
	fmt.Fprintln(sh.out, "  - Type your request naturally")
	fmt.Fprintln(sh.out, "  - 'reset' - Clear conversation history")
	fmt.Fprintln(sh.out, "  - 'user <user_id>' - Switch user (e.g., 'user user_002')")
	fmt.Fprintln(sh.out, "  - 'exit' or 'quit' - Exit the application")
	fmt.Fprintln(sh.out, "\nExample requests:")
	fmt.Fprintln(sh.out, "  - What's my account balance?")
	fmt.Fprintln(sh.out, "  - Change my password to newSecurePass123")
	fmt.Fprintln(sh.out, "  - Show me my recent transactions")
	fmt.Fprintln(sh.out, "  - Deactivate my card")
	fmt.Fprintln(sh.out, strings.Repeat("=", 60))
}
