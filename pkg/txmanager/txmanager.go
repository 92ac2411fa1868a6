package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/lib/pq"

	"github.com/m04kA/NFA-DeliveryBookingService/pkg/dbmetrics"
)

const (
	defaultMaxAttempts     = 5
	defaultInitialInterval = 10 * time.Millisecond
	defaultMaxInterval     = 250 * time.Millisecond

	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

var (
	// ErrBeginTx ошибка начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx ошибка фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrRetriesExhausted транзакция не прошла после всех повторов
	ErrRetriesExhausted = errors.New("txmanager: transaction retries exhausted")
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции в транзакции, передавая её через контекст
type TransactionManager struct {
	db              TxBeginner
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
}

type Option func(*TransactionManager)

// WithMaxRetries задает общее число попыток для Do
func WithMaxRetries(n int) Option {
	return func(m *TransactionManager) {
		if n > 0 {
			m.maxAttempts = n
		}
	}
}

// WithBackoff задает паузы между попытками (со случайным разбросом)
func WithBackoff(initial, ceiling time.Duration) Option {
	return func(m *TransactionManager) {
		if initial > 0 {
			m.initialInterval = initial
		}
		if ceiling >= initial {
			m.maxInterval = ceiling
		}
	}
}

func NewTransactionManager(db TxBeginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{
		db:              db,
		maxAttempts:     defaultMaxAttempts,
		initialInterval: defaultInitialInterval,
		maxInterval:     defaultMaxInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию (READ COMMITTED).
// Дедлок или конфликт сериализации повторяют транзакцию целиком с паузой,
// поэтому fn не должна иметь побочных эффектов вне БД.
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = m.initialInterval
	b.MaxInterval = m.maxInterval

	attempts := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempts++
		err := m.run(ctx, &sql.TxOptions{}, fn)
		if err != nil && !IsSerializationFailure(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(m.maxAttempts)))

	if err != nil && IsSerializationFailure(err) {
		return fmt.Errorf("%w: %d attempts: %w", ErrRetriesExhausted, attempts, err)
	}
	return err
}

// DoReadOnly выполняет fn в read-only транзакции на одном снимке данных (REPEATABLE READ)
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Вложенный вызов переиспользует уже открытую транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}
	return nil
}

// IsSerializationFailure сообщает, что ошибка вызвана конфликтом сериализации или дедлоком
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
}
