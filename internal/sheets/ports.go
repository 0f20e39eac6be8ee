package sheets

import (
	"context"

	"ekspence/internal/core"
)

// Ports for outbound export adapters.
type (
	// TransactionExporter mirrors the full ledger into an external sheet.
	// The export is a whole-table replace: the destination always reflects
	// one consistent snapshot, never a partial merge.
	TransactionExporter interface {
		ReplaceTransactions(ctx context.Context, txns []core.Transaction) error
	}
)
