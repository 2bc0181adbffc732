package slot

import (
	"context"

	"github.com/m04kA/SMC-SlotCalendar/pkg/txmanager"
)

// DBExecutor интерфейс для выполнения запросов (*sql.DB, *sql.Tx, *dbmetrics.DB)
type DBExecutor = txmanager.DBExecutor

// TxManager интерфейс для выполнения функции в транзакции
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}
