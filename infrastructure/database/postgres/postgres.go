package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/restaurant-inventory-api/internal/config"
)

// Transactor executa uma função dentro de uma transação do banco
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(q Queryer) error) error
}

type Conn interface {
	Queryer
	Transactor
	Close() error
	Ping(context.Context) error
}

type Connection struct {
	*sql.DB
}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return &Connection{DB: db}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// RunInTransaction executa fn numa transação; qualquer erro ou panic desfaz tudo
func (c *Connection) RunInTransaction(ctx context.Context, fn func(q Queryer) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "erro ao iniciar transação")
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Wrapf(err, "rollback falhou: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "erro ao confirmar transação")
	}

	return nil
}
