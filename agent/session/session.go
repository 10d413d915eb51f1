// Package session drives the conversation loop: user text goes to the
// completion service together with the operation catalog, requested
// operations are executed through the gateway, and results are folded back
// into the conversation until the service answers with final text.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "github.com/castlebay/supportdesk/agent/contract"
)

const defaultMaxRounds = 10

type Config struct {
	UserID    string
	MaxRounds int
}

// Session holds one user's conversation history and executes turns one at
// a time. A session is owned by a single caller; it is not safe for
// concurrent HandleTurn calls.
type Session struct {
	id           string
	userID       string
	turns        []contractx.Turn
	maxRounds    int
	completions  contractx.CompletionClient
	gateway      contractx.OperationGateway
	systemPrompt string
	catalog      []contractx.OperationInfo

	graphRunner compose.Runnable[TurnInput, TurnOutput]

	now func() time.Time
}

func New(
	ctx context.Context,
	completions contractx.CompletionClient,
	gateway contractx.OperationGateway,
	systemPrompt string,
	cfg Config,
) (*Session, error) {
	if completions == nil {
		return nil, errors.New("completion client is required")
	}
	if gateway == nil {
		return nil, errors.New("operation gateway is required")
	}

	userID := strings.TrimSpace(cfg.UserID)
	if userID == "" {
		return nil, errors.New("user id is required")
	}

	maxRounds := cfg.MaxRounds
	if maxRounds <= 0 {
		maxRounds = defaultMaxRounds
	}

	catalog, err := gateway.ListOperations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load operation catalog: %w", err)
	}

	s := &Session{
		id:           uuid.NewString(),
		userID:       userID,
		maxRounds:    maxRounds,
		completions:  completions,
		gateway:      gateway,
		systemPrompt: systemPrompt,
		catalog:      catalog,
		now:          time.Now,
	}

	graphRunner, err := s.compileHandleTurnGraph(ctx)
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	log.Info().Str("session", s.id).Str("user", userID).Int("operations", len(catalog)).Msg("session ready")
	return s, nil
}

// HandleTurn processes one user turn to completion, including all nested
// operation round-trips, and returns the final assistant text.
func (s *Session) HandleTurn(ctx context.Context, text string) (string, error) {
	out, err := s.graphRunner.Invoke(ctx, TurnInput{Text: text})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}

// runRoundTrips is the bounded model/operation loop. Every turn (user
// message, operation results, final assistant text) is appended to history
// before control returns, including on the limit failure.
func (s *Session) runRoundTrips(ctx context.Context, state *turnState) (*turnState, error) {
	s.append(contractx.Turn{Role: contractx.RoleUser, Content: state.Text})

	for round := 0; ; round++ {
		completion, err := s.completions.Complete(ctx, s.systemPrompt, s.History(), s.catalog)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
		}

		if len(completion.Calls) == 0 {
			reply := strings.TrimSpace(completion.Text)
			if reply == "" {
				reply = "I'm sorry, I couldn't come up with a response."
			}
			s.append(contractx.Turn{Role: contractx.RoleAssistant, Content: reply})
			state.Reply = reply
			return state, nil
		}

		if round >= s.maxRounds {
			return nil, fmt.Errorf("%w: %d round-trips for one turn", contractx.ErrRoundTripLimit, round)
		}

		// Checkpoint before the round's turns go in: a gateway failure
		// mid-round must not leave an assistant call turn without its
		// paired operation results, or the next completion request would
		// carry an unanswered tool call.
		roundStart := len(s.turns)

		s.append(contractx.Turn{
			Role:    contractx.RoleAssistant,
			Content: completion.Text,
			Calls:   completion.Calls,
		})

		for _, call := range completion.Calls {
			result, err := s.executeCall(ctx, call)
			if err != nil {
				s.turns = s.turns[:roundStart]
				return nil, err
			}
			s.append(contractx.Turn{
				Role:      contractx.RoleOperation,
				Content:   result.Content(),
				CallID:    result.CallID,
				Operation: result.Operation,
			})
		}
	}
}

// executeCall runs one operation, always scoped to the session's current
// user: the session overwrites any user_id the model put in the arguments.
func (s *Session) executeCall(ctx context.Context, call contractx.OperationCall) (contractx.OperationResult, error) {
	args := make(map[string]any, len(call.Args)+1)
	for k, v := range call.Args {
		args[k] = v
	}
	args["user_id"] = s.userID
	call.Args = args

	log.Debug().Str("session", s.id).Str("operation", call.Operation).Msg("executing operation call")

	result, err := s.gateway.Execute(ctx, call)
	if err != nil {
		return contractx.OperationResult{}, err
	}
	return result, nil
}

func (s *Session) append(turn contractx.Turn) {
	s.turns = append(s.turns, turn)
}

// Reset clears the history but keeps the active user.
func (s *Session) Reset() {
	s.turns = nil
	log.Info().Str("session", s.id).Str("user", s.userID).Msg("conversation reset")
}

// SwitchUser replaces the active user and resets history: mixing one user's
// history with another's operations would break the scoping invariant.
func (s *Session) SwitchUser(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errors.New("user id is required")
	}
	s.userID = userID
	s.turns = nil
	log.Info().Str("session", s.id).Str("user", userID).Msg("switched user")
	return nil
}

func (s *Session) ID() string     { return s.id }
func (s *Session) UserID() string { return s.userID }

// History returns a copy of the turn sequence.
func (s *Session) History() []contractx.Turn {
	out := make([]contractx.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}
