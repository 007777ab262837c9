package ledger

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Transferer is the native-currency transfer primitive. The execution
// environment provides it; the core treats it as the only fallible external
// collaborator. A non-nil error maps to TransferFailed at the operation
// boundary, and the operation must commit no state when it fails.
type Transferer interface {
	Transfer(to uuid.UUID, amount int64) error
}

// LogTransferer is the default Transferer for deployments where settlement
// happens out of band: it records the instruction and always succeeds.
type LogTransferer struct {
	log zerolog.Logger
}

func NewLogTransferer(log zerolog.Logger) *LogTransferer {
	return &LogTransferer{log: log}
}

func (t *LogTransferer) Transfer(to uuid.UUID, amount int64) error {
	t.log.Info().
		Str("to", to.String()).
		Int64("amount", amount).
		Msg("transfer instruction issued")
	return nil
}
