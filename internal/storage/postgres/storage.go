package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/minseo-cho/gomall/internal/domain/errors"
	"github.com/minseo-cho/gomall/internal/domain/model"
	"github.com/minseo-cho/gomall/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage relies on. Tests substitute
// a pgxmock pool through it.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type categoryRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type cartRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type paymentRepository struct {
	storage *Storage
}

// newPgxPool is swapped by tests to inject a mock pool.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (Pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Categories() repository.CategoryRepository {
	return &categoryRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Carts() repository.CartRepository {
	return &cartRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Payments() repository.PaymentRepository {
	return &paymentRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS categories (
            id SERIAL PRIMARY KEY,
            name TEXT UNIQUE NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            category_id BIGINT NOT NULL REFERENCES categories(id),
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price BIGINT NOT NULL CHECK (price >= 0),
            status TEXT NOT NULL DEFAULT 'inactive',
            photo_url TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS cart_items (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            product_id BIGINT NOT NULL REFERENCES products(id),
            quantity INT NOT NULL CHECK (quantity >= 1),
            UNIQUE (user_id, product_id)
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            total_amount BIGINT NOT NULL CHECK (total_amount >= 0),
            status TEXT NOT NULL DEFAULT 'requested',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_lines (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL REFERENCES products(id),
            name TEXT NOT NULL,
            price BIGINT NOT NULL CHECK (price >= 0),
            quantity INT NOT NULL CHECK (quantity >= 1)
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            uid TEXT UNIQUE NOT NULL,
            name TEXT NOT NULL,
            desired_amount BIGINT NOT NULL CHECK (desired_amount >= 1),
            buyer_name TEXT NOT NULL DEFAULT '',
            buyer_email TEXT NOT NULL DEFAULT '',
            pay_method TEXT NOT NULL DEFAULT 'card',
            status TEXT NOT NULL DEFAULT 'ready',
            paid_ok BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_products_name ON products(name)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_order ON payments(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_status ON payments(status)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, email, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (login, email, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, email, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.Email = email
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, email, password_hash, created_at FROM users WHERE login=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, email, password_hash, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- CategoryRepository implementation ---

func (r *categoryRepository) GetOrCreate(ctx context.Context, name string) (*model.Category, error) {
	const insert = `INSERT INTO categories (name) VALUES ($1)
                    ON CONFLICT (name) DO NOTHING
                    RETURNING id`
	var c model.Category
	c.Name = name
	err := r.storage.pool.QueryRow(ctx, insert, name).Scan(&c.ID)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	const query = `SELECT id, name FROM categories WHERE name=$1`
	if err := r.storage.pool.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	const query = `SELECT id, name FROM categories ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ProductRepository implementation ---

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (category_id, name, description, price, status, photo_url)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at, updated_at`
	p := *product
	err := r.storage.pool.QueryRow(ctx, query,
		p.CategoryID, p.Name, p.Description, p.Price, p.Status, p.PhotoURL,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, category_id, name, description, price, status, photo_url, created_at, updated_at
                   FROM products WHERE id=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.Status, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetByName(ctx context.Context, categoryID int64, name string) (*model.Product, error) {
	const query = `SELECT id, category_id, name, description, price, status, photo_url, created_at, updated_at
                   FROM products WHERE category_id=$1 AND name=$2`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, categoryID, name).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.Status, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	status := filter.Status
	if status == "" {
		status = model.ProductStatusActive
	}

	const query = `SELECT id, category_id, name, description, price, status, photo_url, created_at, updated_at
                   FROM products
                   WHERE status=$1 AND ($2='' OR name ILIKE '%'||$2||'%')
                   ORDER BY id DESC
                   LIMIT $3 OFFSET $4`
	rows, err := r.storage.pool.Query(ctx, query, status, filter.Query, limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.Status, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) UpdateStatusBulk(ctx context.Context, ids []int64, status model.ProductStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	const query = `UPDATE products SET status=$1, updated_at=NOW() WHERE id = ANY($2)`
	tag, err := r.storage.pool.Exec(ctx, query, status, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// --- CartRepository implementation ---

func (r *cartRepository) Add(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, bool, error) {
	// The unique (user_id, product_id) constraint turns a duplicate add into
	// an increment of the existing row.
	const query = `INSERT INTO cart_items (user_id, product_id, quantity)
                   VALUES ($1, $2, $3)
                   ON CONFLICT (user_id, product_id)
                   DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
                   RETURNING id, quantity, (xmax = 0)`
	item := model.CartItem{UserID: userID, ProductID: productID}
	var created bool
	err := r.storage.pool.QueryRow(ctx, query, userID, productID, quantity).Scan(&item.ID, &item.Quantity, &created)
	if err != nil {
		return nil, false, err
	}
	return &item, created, nil
}

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	const query = `SELECT c.id, c.user_id, c.product_id, c.quantity, p.name, p.price, p.status
                   FROM cart_items c JOIN products p ON p.id = c.product_id
                   WHERE c.user_id=$1 ORDER BY p.name`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CartItem
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.ProductName, &item.ProductPrice, &item.ProductStatus); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	const query = `UPDATE cart_items SET quantity=$1 WHERE user_id=$2 AND product_id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, quantity, userID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *cartRepository) Remove(ctx context.Context, userID, productID int64) error {
	const query = `DELETE FROM cart_items WHERE user_id=$1 AND product_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, userID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	const query = `DELETE FROM cart_items WHERE user_id=$1`
	_, err := r.storage.pool.Exec(ctx, query, userID)
	return err
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order, lines []model.OrderLine) (*model.Order, error) {
	created := *order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (user_id, total_amount, status)
                             VALUES ($1, $2, $3)
                             RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, insertOrder, order.UserID, order.TotalAmount, model.OrderStatusRequested).
			Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
			return err
		}
		created.Status = model.OrderStatusRequested

		const insertLine = `INSERT INTO order_lines (order_id, product_id, name, price, quantity)
                            VALUES ($1, $2, $3, $4, $5)`
		for _, line := range lines {
			if _, err := tx.Exec(ctx, insertLine, created.ID, line.ProductID, line.Name, line.Price, line.Quantity); err != nil {
				return err
			}
		}

		const clearCart = `DELETE FROM cart_items WHERE user_id=$1`
		if _, err := tx.Exec(ctx, clearCart, order.UserID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id, userID int64) (*model.Order, error) {
	const query = `SELECT id, user_id, total_amount, status, created_at, updated_at
                   FROM orders WHERE id=$1 AND user_id=$2`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, id, userID).Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT id, user_id, total_amount, status, created_at, updated_at
                   FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ListLines(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	const query = `SELECT id, order_id, product_id, name, price, quantity
                   FROM order_lines WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderLine
	for rows.Next() {
		var l model.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Name, &l.Price, &l.Quantity); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, orderID, paymentID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// First observed paid report wins; a second reconciliation of an
		// already paid order changes nothing.
		const updateOrder = `UPDATE orders SET status='paid', updated_at=NOW()
                             WHERE id=$1 AND status <> 'paid'`
		tag, err := tx.Exec(ctx, updateOrder, orderID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		const flagPayment = `UPDATE payments SET status='paid', paid_ok=TRUE, updated_at=NOW()
                             WHERE id=$1 AND order_id=$2`
		if _, err := tx.Exec(ctx, flagPayment, paymentID, orderID); err != nil {
			return err
		}

		const dropSiblings = `DELETE FROM payments WHERE order_id=$1 AND id <> $2`
		if _, err := tx.Exec(ctx, dropSiblings, orderID, paymentID); err != nil {
			return err
		}
		return nil
	})
}

// --- PaymentRepository implementation ---

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	const query = `INSERT INTO payments (order_id, uid, name, desired_amount, buyer_name, buyer_email, pay_method, status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING id, created_at, updated_at`
	p := *payment
	if p.Status == "" {
		p.Status = model.PayStatusReady
	}
	err := r.storage.pool.QueryRow(ctx, query,
		p.OrderID, p.UID, p.Name, p.DesiredAmount, p.BuyerName, p.BuyerEmail, p.PayMethod, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) GetByUID(ctx context.Context, uid string) (*model.Payment, error) {
	const query = `SELECT id, order_id, uid, name, desired_amount, buyer_name, buyer_email, pay_method, status, paid_ok, created_at, updated_at
                   FROM payments WHERE uid=$1`
	var p model.Payment
	err := r.storage.pool.QueryRow(ctx, query, uid).Scan(
		&p.ID, &p.OrderID, &p.UID, &p.Name, &p.DesiredAmount, &p.BuyerName, &p.BuyerEmail,
		&p.PayMethod, &p.Status, &p.PaidOK, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.Payment, error) {
	const query = `SELECT id, order_id, uid, name, desired_amount, buyer_name, buyer_email, pay_method, status, paid_ok, created_at, updated_at
                   FROM payments WHERE order_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.UID, &p.Name, &p.DesiredAmount, &p.BuyerName, &p.BuyerEmail,
			&p.PayMethod, &p.Status, &p.PaidOK, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *paymentRepository) ApplyGatewayStatus(ctx context.Context, paymentID int64, status model.PayStatus, paidOK bool) error {
	const query = `UPDATE payments SET status=$1, paid_ok=$2, updated_at=NOW() WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, status, paidOK, paymentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *paymentRepository) SelectReadyBatch(ctx context.Context, limit int) ([]model.Payment, error) {
	const selectQuery = `SELECT p.id, p.order_id, p.uid, p.name, p.desired_amount, p.buyer_name, p.buyer_email, p.pay_method, p.status, p.paid_ok, p.created_at, p.updated_at
                         FROM payments p JOIN orders o ON o.id = p.order_id
                         WHERE p.status='ready' AND o.status IN ('requested', 'failed_payment')
                         ORDER BY p.created_at
                         LIMIT $1
                         FOR UPDATE OF p SKIP LOCKED`

	var payments []model.Payment
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p model.Payment
			if err := rows.Scan(&p.ID, &p.OrderID, &p.UID, &p.Name, &p.DesiredAmount, &p.BuyerName, &p.BuyerEmail,
				&p.PayMethod, &p.Status, &p.PaidOK, &p.CreatedAt, &p.UpdatedAt); err != nil {
				return err
			}
			payments = append(payments, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Pool exposes the underlying connection pool for advanced use.
func (s *Storage) Pool() Pool {
	return s.pool
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
