package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"retail-order-service/internal/models"
)

// orderNumberLockID keys the advisory lock serializing order-number
// assignment. Combined with the UNIQUE constraint on order_number this
// guarantees strictly increasing, duplicate-free numbers under concurrent
// creation.
const orderNumberLockID = 874529

const orderColumns = "id, customer_id, order_number, booking_time, delivery_address, delivery_cost, product_cost, paid, status"

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type PostgresOrderRepository struct {
	db      *sql.DB
	history *PostgresHistoryRepository
	logger  *logrus.Entry
}

func NewPostgresOrderRepository(db *sql.DB, history *PostgresHistoryRepository) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db:      db,
		history: history,
		logger:  logrus.WithField("component", "order_repository"),
	}
}

// CreateOrder persists the order, its product assignments and the
// ORDER_CREATED history node in a single transaction. The order number is
// assigned inside the same transaction under an advisory lock.
func (r *PostgresOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, orderNumberLockID); err != nil {
		return fmt.Errorf("failed to acquire order number lock: %w", err)
	}

	var latest int64
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(order_number), $1) FROM orders`, models.BaselineOrderNumber).Scan(&latest)
	if err != nil {
		return fmt.Errorf("failed to read latest order number: %w", err)
	}
	order.OrderNumber = latest + 1

	if order.BookingTime.IsZero() {
		order.BookingTime = time.Now().UTC()
	}

	insertQuery := `
		INSERT INTO orders (customer_id, order_number, booking_time, delivery_address, delivery_cost, product_cost, paid, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err = tx.QueryRowContext(ctx, insertQuery,
		order.CustomerID, order.OrderNumber, order.BookingTime, order.DeliveryAddress,
		order.DeliveryCost, order.ProductCost, order.Paid, order.Status,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	assignQuery := `
		INSERT INTO order_products (order_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (order_id, product_id) DO NOTHING
	`

	for _, productID := range order.ProductIDs() {
		if _, err := tx.ExecContext(ctx, assignQuery, order.ID, productID); err != nil {
			return fmt.Errorf("failed to assign product %d: %w", productID, err)
		}
	}

	if err := r.history.appendNode(ctx, tx, order, models.OrderHistoryCreated); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	}).Info("Order created successfully")
	return nil
}

func (r *PostgresOrderRepository) GetOrderByID(ctx context.Context, orderID int64) (*models.Order, error) {
	return r.getOrder(ctx, r.db, orderID)
}

func (r *PostgresOrderRepository) GetOrdersForCustomer(ctx context.Context, customerID int64) ([]*models.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE customer_id = $1
		ORDER BY booking_time DESC
	`, orderColumns)

	return r.queryOrders(ctx, query, customerID)
}

func (r *PostgresOrderRepository) GetOrdersAssignedToOperator(ctx context.Context, operatorID int64) ([]*models.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE id IN (SELECT order_id FROM order_operators WHERE operator_id = $1)
		ORDER BY id ASC
	`, orderColumns)

	return r.queryOrders(ctx, query, operatorID)
}

// GetAvailableOrders returns orders not yet assigned to any operator.
func (r *PostgresOrderRepository) GetAvailableOrders(ctx context.Context) ([]*models.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE id NOT IN (SELECT order_id FROM order_operators)
		ORDER BY id ASC
	`, orderColumns)

	return r.queryOrders(ctx, query)
}

func (r *PostgresOrderRepository) GetOrdersByCriteria(ctx context.Context, criteria models.OrderCriteria) ([]*models.Order, error) {
	query, args, err := buildCriteriaQuery(criteria)
	if err != nil {
		r.logger.WithError(err).Error("Failed to build criteria query")
		return []*models.Order{}, nil
	}

	return r.queryOrders(ctx, query, args...)
}

// buildCriteriaQuery composes the optional order filters into one SELECT.
func buildCriteriaQuery(criteria models.OrderCriteria) (string, []interface{}, error) {
	builder := sq.Select("id", "customer_id", "order_number", "booking_time", "delivery_address",
		"delivery_cost", "product_cost", "paid", "status").
		From("orders").
		PlaceholderFormat(sq.Dollar).
		OrderBy("order_number ASC")

	if len(criteria.ProductIDs) > 0 {
		builder = builder.Where("id IN (SELECT order_id FROM order_products WHERE product_id = ANY(?))", pq.Array(criteria.ProductIDs))
	}
	if len(criteria.OrderNumbers) > 0 {
		builder = builder.Where(sq.Eq{"order_number": criteria.OrderNumbers})
	}
	if len(criteria.Statuses) > 0 {
		statuses := make([]string, 0, len(criteria.Statuses))
		for _, status := range criteria.Statuses {
			statuses = append(statuses, string(status))
		}
		builder = builder.Where(sq.Eq{"status": statuses})
	}
	if criteria.BookingTimeBottom != nil {
		builder = builder.Where(sq.GtOrEq{"booking_time": *criteria.BookingTimeBottom})
	}
	if criteria.BookingTimeTop != nil {
		builder = builder.Where(sq.LtOrEq{"booking_time": *criteria.BookingTimeTop})
	}
	if criteria.Paid != nil {
		builder = builder.Where(sq.Eq{"paid": *criteria.Paid})
	}
	if criteria.CostBottom != nil {
		builder = builder.Where(sq.GtOrEq{"product_cost": *criteria.CostBottom})
	}
	if criteria.CostTop != nil {
		builder = builder.Where(sq.LtOrEq{"product_cost": *criteria.CostTop})
	}

	return builder.ToSql()
}

func (r *PostgresOrderRepository) GetOrderProducts(ctx context.Context, orderID int64) ([]models.Product, error) {
	products, err := r.getOrderProducts(ctx, r.db, orderID)
	if err != nil {
		r.logger.WithError(err).WithField("order_id", orderID).Error("Failed to get order products")
		return []models.Product{}, nil
	}
	return products, nil
}

// UpdateDeliveryDetails writes the provided delivery fields and appends an
// ORDER_UPDATED node with the post-write snapshot in one transaction.
func (r *PostgresOrderRepository) UpdateDeliveryDetails(ctx context.Context, orderID int64, update models.DeliveryDetailsUpdate) (*models.Order, error) {
	return r.mutateOrder(ctx, orderID, "Order delivery details updated", func(tx *sql.Tx) error {
		query := `
			UPDATE orders
			SET delivery_address = COALESCE($2, delivery_address),
			    delivery_cost = COALESCE($3, delivery_cost)
			WHERE id = $1
		`
		result, err := tx.ExecContext(ctx, query, orderID, update.DeliveryAddress, update.DeliveryCost)
		if err != nil {
			return fmt.Errorf("failed to update delivery details: %w", err)
		}
		return checkAffected(result)
	})
}

// UpdateStatus writes the new status (and optionally the paid flag), then
// re-reads the order inside the transaction so the appended snapshot
// reflects the state after the write.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus, markPaid bool) (*models.Order, error) {
	return r.mutateOrder(ctx, orderID, "Order status updated", func(tx *sql.Tx) error {
		query := `
			UPDATE orders
			SET status = $2, paid = paid OR $3
			WHERE id = $1
		`
		result, err := tx.ExecContext(ctx, query, orderID, status, markPaid)
		if err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		return checkAffected(result)
	})
}

// DeleteOrder clears the product assignments, appends an ORDER_DELETED node
// carrying the pre-delete snapshot, then removes the order row. The history
// chain for the order number is retained.
func (r *PostgresOrderRepository) DeleteOrder(ctx context.Context, orderID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	order, err := r.getOrder(ctx, tx, orderID)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_products WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("failed to remove product assignments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_operators WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("failed to remove operator assignment: %w", err)
	}

	if err := r.history.appendNode(ctx, tx, order, models.OrderHistoryDeleted); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.WithField("order_id", orderID).Info("Order deleted successfully")
	return nil
}

func (r *PostgresOrderRepository) AssignProducts(ctx context.Context, orderID int64, productIDs []int64) (*models.Order, error) {
	return r.mutateOrder(ctx, orderID, "Products assigned to order", func(tx *sql.Tx) error {
		query := `
			INSERT INTO order_products (order_id, product_id)
			VALUES ($1, $2)
			ON CONFLICT (order_id, product_id) DO NOTHING
		`
		for _, productID := range productIDs {
			if _, err := tx.ExecContext(ctx, query, orderID, productID); err != nil {
				return fmt.Errorf("failed to assign product %d: %w", productID, err)
			}
		}
		return nil
	})
}

// RemoveProducts removes the listed assignments, or all of them when
// productIDs is nil.
func (r *PostgresOrderRepository) RemoveProducts(ctx context.Context, orderID int64, productIDs []int64) (*models.Order, error) {
	return r.mutateOrder(ctx, orderID, "Products removed from order", func(tx *sql.Tx) error {
		if productIDs == nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM order_products WHERE order_id = $1`, orderID); err != nil {
				return fmt.Errorf("failed to remove product assignments: %w", err)
			}
			return nil
		}
		query := `DELETE FROM order_products WHERE order_id = $1 AND product_id = ANY($2)`
		if _, err := tx.ExecContext(ctx, query, orderID, pq.Array(productIDs)); err != nil {
			return fmt.Errorf("failed to remove product assignments: %w", err)
		}
		return nil
	})
}

func (r *PostgresOrderRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	description, err := marshalDescription(product.Description)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO products (name, price, amount, available, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err = r.db.QueryRowContext(ctx, query,
		product.Name, product.Price, product.Amount, product.Available, description,
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	r.logger.WithField("product_id", product.ID).Info("Product created successfully")
	return nil
}

func (r *PostgresOrderRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	description, err := marshalDescription(product.Description)
	if err != nil {
		return err
	}

	query := `
		UPDATE products
		SET name = $2, price = $3, amount = $4, available = $5, description = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Price, product.Amount, product.Available, description,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if err := checkAffected(result); err != nil {
		return err
	}

	r.logger.WithField("product_id", product.ID).Info("Product updated successfully")
	return nil
}

func (r *PostgresOrderRepository) DeleteProduct(ctx context.Context, productID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if err := checkAffected(result); err != nil {
		return err
	}

	r.logger.WithField("product_id", productID).Info("Product deleted successfully")
	return nil
}

func (r *PostgresOrderRepository) GetProduct(ctx context.Context, productID int64) (*models.Product, error) {
	query := `
		SELECT id, name, price, amount, available, description
		FROM products
		WHERE id = $1
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, productID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (r *PostgresOrderRepository) GetProductsByIDs(ctx context.Context, productIDs []int64) ([]models.Product, error) {
	query := `
		SELECT id, name, price, amount, available, description
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(productIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *PostgresOrderRepository) CountProductAssignation(ctx context.Context, productID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM order_products WHERE product_id = $1`, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count product assignations: %w", err)
	}
	return count, nil
}

func (r *PostgresOrderRepository) CountProductsByName(ctx context.Context, name string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE name = $1`, name).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products by name: %w", err)
	}
	return count, nil
}

// OrderCountsByOperator recomputes the per-operator assignment counts from
// the store. Operators without assignments are included with a zero count.
func (r *PostgresOrderRepository) OrderCountsByOperator(ctx context.Context) ([]models.OperatorOrderCount, error) {
	query := `
		SELECT o.id, o.username, COUNT(a.order_id) AS orders_taken
		FROM operators o
		LEFT JOIN order_operators a ON a.operator_id = o.id
		GROUP BY o.id, o.username
		ORDER BY o.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.WithError(err).Error("Failed to get order counts by operator")
		return []models.OperatorOrderCount{}, nil
	}
	defer rows.Close()

	counts := make([]models.OperatorOrderCount, 0)
	for rows.Next() {
		var entry models.OperatorOrderCount
		if err := rows.Scan(&entry.OperatorID, &entry.Username, &entry.OrdersTaken); err != nil {
			r.logger.WithError(err).Error("Failed to scan operator order count")
			return []models.OperatorOrderCount{}, nil
		}
		counts = append(counts, entry)
	}
	if err := rows.Err(); err != nil {
		r.logger.WithError(err).Error("Failed to iterate operator order counts")
		return []models.OperatorOrderCount{}, nil
	}

	return counts, nil
}

// AssignOrdersToOperator assigns every listed order to the operator,
// replacing any previous assignment.
func (r *PostgresOrderRepository) AssignOrdersToOperator(ctx context.Context, orderIDs []int64, operatorID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertOperatorAssignments(ctx, tx, orderIDs, operatorID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"operator_id": operatorID,
		"order_count": len(orderIDs),
	}).Info("Orders assigned to operator")
	return nil
}

// RemoveOrdersFromOperator clears the listed assignments for the operator,
// or all of them when orderIDs is nil.
func (r *PostgresOrderRepository) RemoveOrdersFromOperator(ctx context.Context, operatorID int64, orderIDs []int64) error {
	var err error
	if orderIDs == nil {
		_, err = r.db.ExecContext(ctx, `DELETE FROM order_operators WHERE operator_id = $1`, operatorID)
	} else {
		_, err = r.db.ExecContext(ctx,
			`DELETE FROM order_operators WHERE operator_id = $1 AND order_id = ANY($2)`,
			operatorID, pq.Array(orderIDs))
	}
	if err != nil {
		return fmt.Errorf("failed to remove orders from operator: %w", err)
	}

	r.logger.WithField("operator_id", operatorID).Info("Orders removed from operator")
	return nil
}

// ReassignOrders applies a precomputed orderID->operatorID plan and clears
// whatever is left of the source operator's assignments, all in one
// transaction. The moved rows are locked so concurrent redistributions
// cannot double-assign an order.
func (r *PostgresOrderRepository) ReassignOrders(ctx context.Context, fromOperatorID int64, plan map[int64]int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`SELECT order_id FROM order_operators WHERE operator_id = $1 FOR UPDATE`, fromOperatorID); err != nil {
		return fmt.Errorf("failed to lock operator assignments: %w", err)
	}

	for orderID, operatorID := range plan {
		if err := upsertOperatorAssignments(ctx, tx, []int64{orderID}, operatorID); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_operators WHERE operator_id = $1`, fromOperatorID); err != nil {
		return fmt.Errorf("failed to clear source operator assignments: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"from_operator_id": fromOperatorID,
		"order_count":      len(plan),
	}).Info("Orders reassigned")
	return nil
}

func upsertOperatorAssignments(ctx context.Context, tx *sql.Tx, orderIDs []int64, operatorID int64) error {
	query := `
		INSERT INTO order_operators (order_id, operator_id, assigned_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (order_id) DO UPDATE SET operator_id = EXCLUDED.operator_id, assigned_at = EXCLUDED.assigned_at
	`
	now := time.Now().UTC()
	for _, orderID := range orderIDs {
		if _, err := tx.ExecContext(ctx, query, orderID, operatorID, now); err != nil {
			return fmt.Errorf("failed to assign order %d to operator %d: %w", orderID, operatorID, err)
		}
	}
	return nil
}

// mutateOrder runs mutate inside a transaction, re-reads the order and
// appends an ORDER_UPDATED history node carrying the fresh snapshot.
func (r *PostgresOrderRepository) mutateOrder(ctx context.Context, orderID int64, logMessage string, mutate func(tx *sql.Tx) error) (*models.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := mutate(tx); err != nil {
		return nil, err
	}

	order, err := r.getOrder(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	if err := r.history.appendNode(ctx, tx, order, models.OrderHistoryUpdated); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.WithField("order_id", orderID).Info(logMessage)
	return order, nil
}

func (r *PostgresOrderRepository) getOrder(ctx context.Context, q queryer, orderID int64) (*models.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE id = $1
	`, orderColumns)

	var order models.Order
	err := q.QueryRowContext(ctx, query, orderID).Scan(
		&order.ID, &order.CustomerID, &order.OrderNumber, &order.BookingTime,
		&order.DeliveryAddress, &order.DeliveryCost, &order.ProductCost, &order.Paid, &order.Status,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	products, err := r.getOrderProducts(ctx, q, order.ID)
	if err != nil {
		return nil, err
	}
	order.Products = products

	return &order, nil
}

func (r *PostgresOrderRepository) getOrderProducts(ctx context.Context, q queryer, orderID int64) ([]models.Product, error) {
	query := `
		SELECT p.id, p.name, p.price, p.amount, p.available, p.description
		FROM products p
		JOIN order_products op ON op.product_id = p.id
		WHERE op.order_id = $1
		ORDER BY p.id
	`

	rows, err := q.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// queryOrders runs a multi-order read and loads each order's products.
// List reads degrade to an empty result on store failure.
func (r *PostgresOrderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.WithError(err).Error("Failed to query orders")
		return []*models.Order{}, nil
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID, &order.CustomerID, &order.OrderNumber, &order.BookingTime,
			&order.DeliveryAddress, &order.DeliveryCost, &order.ProductCost, &order.Paid, &order.Status,
		)
		if err != nil {
			r.logger.WithError(err).Error("Failed to scan order")
			return []*models.Order{}, nil
		}
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		r.logger.WithError(err).Error("Failed to iterate orders")
		return []*models.Order{}, nil
	}

	for _, order := range orders {
		products, err := r.getOrderProducts(ctx, r.db, order.ID)
		if err != nil {
			r.logger.WithError(err).WithField("order_id", order.ID).Error("Failed to load order products")
			return []*models.Order{}, nil
		}
		order.Products = products
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProductRow(scanner rowScanner, product *models.Product) error {
	var description []byte
	err := scanner.Scan(&product.ID, &product.Name, &product.Price, &product.Amount, &product.Available, &description)
	if err != nil {
		return err
	}
	if len(description) > 0 {
		if err := json.Unmarshal(description, &product.Description); err != nil {
			return fmt.Errorf("failed to decode product description: %w", err)
		}
	}
	return nil
}

func scanProduct(row *sql.Row) (*models.Product, error) {
	var product models.Product
	if err := scanProductRow(row, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	products := make([]models.Product, 0)
	for rows.Next() {
		var product models.Product
		if err := scanProductRow(rows, &product); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

func marshalDescription(description map[string]string) ([]byte, error) {
	if description == nil {
		description = map[string]string{}
	}
	data, err := json.Marshal(description)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product description: %w", err)
	}
	return data, nil
}

func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
