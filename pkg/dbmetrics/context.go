package dbmetrics

import "context"

type txKey struct{}

// WithTx кладет транзакцию в контекст
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext достает транзакцию из контекста, nil если её нет
func TxFromContext(ctx context.Context) TxExecutor {
	tx, _ := ctx.Value(txKey{}).(TxExecutor)
	return tx
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе db
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return db
}

// IsInTransaction проверяет, выполняется ли код внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	return TxFromContext(ctx) != nil
}
