package dispatch

import (
	"context"
	"errors"

	contractx "github.com/castlebay/supportdesk/agent/contract"
)

// DirectGateway executes operations in-process, without a spawned tool
// server. It is the default wiring for the shell and for tests.
type DirectGateway struct {
	dispatcher *Dispatcher
}

var _ contractx.OperationGateway = (*DirectGateway)(nil)

func NewDirectGateway(d *Dispatcher) *DirectGateway {
	return &DirectGateway{dispatcher: d}
}

func (g *DirectGateway) Execute(ctx context.Context, call contractx.OperationCall) (contractx.OperationResult, error) {
	result := contractx.OperationResult{
		CallID:    call.ID,
		Operation: call.Operation,
	}

	payload, err := g.dispatcher.Execute(ctx, call.Operation, call.Args)
	switch {
	case err == nil:
		result.Payload = payload
	case errors.Is(err, contractx.ErrUnknownOperation), errors.Is(err, contractx.ErrInvalidArguments):
		// Rejected calls go back to the model as operation results so it
		// can retry with corrected arguments.
		result.Err = err.Error()
	default:
		return contractx.OperationResult{}, err
	}

	return result, nil
}

func (g *DirectGateway) ListOperations(ctx context.Context) ([]contractx.OperationInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Catalog(), nil
}

func (g *DirectGateway) Close() error {
	return nil
}
