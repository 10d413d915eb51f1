package contract

import "context"

// CompletionClient is the boundary to the hosted completion service. One
// Complete call is one round-trip: the full ordered history plus the
// operation catalog go out, and either final text or operation calls
// come back.
type CompletionClient interface {
	Complete(ctx context.Context, system string, turns []Turn, catalog []OperationInfo) (Completion, error)
}

// OperationGateway executes one operation call and returns its normalized
// result. Implementations are the in-process dispatcher and the stdio
// transport to a spawned tool-server process.
type OperationGateway interface {
	Execute(ctx context.Context, call OperationCall) (OperationResult, error)
	ListOperations(ctx context.Context) ([]OperationInfo, error)
	Close() error
}
