package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"orderservice/pkg/order/domain/model"
)

type orderRow struct {
	ID          string          `db:"id"`
	CustomerID  string          `db:"customer_id"`
	Status      string          `db:"status"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Currency    string          `db:"currency"`
	Version     int             `db:"version"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

type itemRow struct {
	ID         string          `db:"id"`
	OrderID    string          `db:"order_id"`
	Position   int             `db:"position"`
	ProductID  string          `db:"product_id"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	Currency   string          `db:"currency"`
	Quantity   int             `db:"quantity"`
	TotalPrice decimal.Decimal `db:"total_price"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

const (
	insertOrderQuery = `INSERT INTO orders (id, customer_id, status, total_amount, currency, version, created_at, updated_at)
VALUES (:id, :customer_id, :status, :total_amount, :currency, :version, :created_at, :updated_at)`

	updateOrderQuery = `UPDATE orders
SET status = :status, total_amount = :total_amount, currency = :currency, version = :version, updated_at = :updated_at
WHERE id = :id AND version = :expected_version`

	deleteItemsQuery = `DELETE FROM order_items WHERE order_id = ?`

	insertItemsQuery = `INSERT INTO order_items (id, order_id, position, product_id, unit_price, currency, quantity, total_price, created_at, updated_at)
VALUES (:id, :order_id, :position, :product_id, :unit_price, :currency, :quantity, :total_price, :created_at, :updated_at)`

	selectOrderQuery = `SELECT id, customer_id, status, total_amount, currency, version, created_at, updated_at
FROM orders WHERE id = ?`

	selectItemsQuery = `SELECT id, order_id, position, product_id, unit_price, currency, quantity, total_price, created_at, updated_at
FROM order_items WHERE order_id = ? ORDER BY position`
)

func NewOrderRepository(db *sqlx.DB) model.OrderRepository {
	return &orderRepository{db: db}
}

type orderRepository struct {
	db *sqlx.DB
}

func (r *orderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *orderRepository) Store(ctx context.Context, order *model.Order) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	row := newOrderRow(order)
	if order.Version() == 0 {
		if _, err = tx.NamedExecContext(ctx, insertOrderQuery, row); err != nil {
			return errors.Wrap(err, "insert order")
		}
	} else if err = r.updateOrder(ctx, tx, row, order.Version()); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, deleteItemsQuery, row.ID); err != nil {
		return errors.Wrap(err, "delete order items")
	}
	if items := newItemRows(order); len(items) > 0 {
		if _, err = tx.NamedExecContext(ctx, insertItemsQuery, items); err != nil {
			return errors.Wrap(err, "insert order items")
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit order")
	}
	order.IncrementVersion()
	return nil
}

func (r *orderRepository) updateOrder(ctx context.Context, tx *sqlx.Tx, row orderRow, expectedVersion int) error {
	res, err := tx.NamedExecContext(ctx, updateOrderQuery, struct {
		orderRow
		ExpectedVersion int `db:"expected_version"`
	}{orderRow: row, ExpectedVersion: expectedVersion})
	if err != nil {
		return errors.Wrap(err, "update order")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update order")
	}
	if affected == 0 {
		return errors.Wrapf(model.ErrOptimisticLock, "order %s version %d", row.ID, expectedVersion)
	}
	return nil
}

func (r *orderRepository) Find(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var row orderRow
	if err := r.db.GetContext(ctx, &row, selectOrderQuery, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(model.ErrOrderNotFound, "order %s", id)
		}
		return nil, errors.Wrap(err, "select order")
	}
	var items []itemRow
	if err := r.db.SelectContext(ctx, &items, selectItemsQuery, row.ID); err != nil {
		return nil, errors.Wrap(err, "select order items")
	}
	return restoreOrder(row, items)
}

func newOrderRow(order *model.Order) orderRow {
	return orderRow{
		ID:          order.ID().String(),
		CustomerID:  order.CustomerID().String(),
		Status:      order.Status().String(),
		TotalAmount: order.TotalAmount().Amount(),
		Currency:    order.TotalAmount().Currency(),
		Version:     order.Version() + 1,
		CreatedAt:   order.CreatedAt(),
		UpdatedAt:   order.UpdatedAt(),
	}
}

func newItemRows(order *model.Order) []itemRow {
	lines := order.Items()
	rows := make([]itemRow, 0, len(lines))
	for i, line := range lines {
		rows = append(rows, itemRow{
			ID:         line.ID().String(),
			OrderID:    order.ID().String(),
			Position:   i,
			ProductID:  line.ProductID().String(),
			UnitPrice:  line.UnitPrice().Amount(),
			Currency:   line.UnitPrice().Currency(),
			Quantity:   line.Quantity(),
			TotalPrice: line.TotalPrice().Amount(),
			CreatedAt:  line.CreatedAt(),
			UpdatedAt:  line.UpdatedAt(),
		})
	}
	return rows
}

func restoreOrder(row orderRow, items []itemRow) (*model.Order, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parse order id")
	}
	customerID, err := uuid.Parse(row.CustomerID)
	if err != nil {
		return nil, errors.Wrap(err, "parse customer id")
	}
	status, err := model.ParseOrderStatus(row.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]*model.OrderLine, 0, len(items))
	for _, item := range items {
		line, err := restoreLine(item)
		if err != nil {
			return nil, errors.Wrapf(err, "order %s item %s", row.ID, item.ID)
		}
		lines = append(lines, line)
	}
	return model.RestoreOrder(id, customerID, status, lines, row.Version, row.CreatedAt, row.UpdatedAt)
}

func restoreLine(item itemRow) (*model.OrderLine, error) {
	id, err := uuid.Parse(item.ID)
	if err != nil {
		return nil, err
	}
	productID, err := uuid.Parse(item.ProductID)
	if err != nil {
		return nil, err
	}
	unitPrice, err := model.NewMoney(item.UnitPrice, item.Currency)
	if err != nil {
		return nil, err
	}
	return model.RestoreOrderLine(id, productID, unitPrice, item.Quantity, item.CreatedAt, item.UpdatedAt)
}
