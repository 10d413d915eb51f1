package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/castlebay/supportdesk/agent/contract"
)

type TurnInput struct {
	Text string
}

type TurnOutput struct {
	Reply string
}

type turnState struct {
	Text  string
	Reply string
}

func (s *Session) compileHandleTurnGraph(
	ctx context.Context,
) (compose.Runnable[TurnInput, TurnOutput], error) {
	graph := compose.NewGraph[TurnInput, TurnOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in TurnInput) (*turnState, error) {
			text := strings.TrimSpace(in.Text)
			if text == "" {
				return nil, contractx.ErrEmptyMessage
			}
			return &turnState{Text: text}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("run_round_trips",
		compose.InvokableLambda(func(ctx context.Context, in *turnState) (*turnState, error) {
			return s.runRoundTrips(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node run_round_trips: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *turnState) (TurnOutput, error) {
			if in == nil {
				return TurnOutput{}, fmt.Errorf("turn state is nil")
			}
			return TurnOutput{Reply: in.Reply}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "run_round_trips"},
		{"run_round_trips", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("session.handle_turn"))
	if err != nil {
		return nil, fmt.Errorf("compile session graph: %w", err)
	}
	return runner, nil
}
