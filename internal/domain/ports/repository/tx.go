package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is the opaque transaction handle repositories accept. Concrete type is
// infra-defined (pgx.Tx for Postgres); nil means the non-transactional path.
type Tx interface{}

// NoTX is the explicit "no transaction" handle.
var NoTX Tx

// TransactionManager executes a function within a database transaction,
// passing the handle through `tx` so use-case interfaces stay clean of
// storage types. Repositories must gracefully accept a nil handle.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
