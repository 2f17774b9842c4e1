package memory

import (
	"context"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

// txManagerInMemory выполняет fn без реальной транзакционности: записи
// становятся видимыми сразу. Для memory-драйвера этого достаточно —
// сценарий bulk-импорта «проверка уникальности видит строки своего batch»
// выполняется тривиально, а отката memory-хранилище не поддерживает.
type txManagerInMemory struct{}

// NewTxManager возвращает no-op TxManager для memory-драйвера.
func NewTxManager() domain.TxManager {
	return txManagerInMemory{}
}

func (txManagerInMemory) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ domain.TxManager = txManagerInMemory{}
