package cartstore

import (
	"context"
	"database/sql"
	_ "embed"

	"github.com/go-faster/errors"
	"github.com/lib/pq"

	"github.com/MarcGrol/shoppingcart/lib/mytime"
	"github.com/MarcGrol/shoppingcart/lib/myuuid"
	"github.com/MarcGrol/shoppingcart/services/cart/cartmodel"
)

//go:embed schema.sql
var schema string

// cartLockID identifies the advisory lock that serializes all cart transactions
const cartLockID int64 = 7_342_001

const (
	lockCartQuery      = `SELECT pg_advisory_xact_lock($1)`
	selectCartQuery    = `SELECT id, created_at, last_modified FROM carts ORDER BY created_at LIMIT 1`
	insertCartQuery    = `INSERT INTO carts (id, created_at) VALUES ($1, $2)`
	touchCartQuery     = `UPDATE carts SET last_modified = $2 WHERE id = $1`
	deleteCartQuery    = `DELETE FROM carts WHERE id = $1`
	selectLinesQuery   = `SELECT product_id, quantity FROM cart_lines WHERE cart_id = $1 ORDER BY position`
	upsertLineQuery    = `INSERT INTO cart_lines (cart_id, position, product_id, quantity) VALUES ($1, $2, $3, $4) ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity, position = EXCLUDED.position`
	selectPricesQuery  = `SELECT id, name, price FROM products WHERE id = ANY($1)`
	productExistsQuery = `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`
	upsertProductQuery = `INSERT INTO products (id, name, price) VALUES ($1, $2, $3) ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price`
)

type ctxTxKey struct{}

type querier interface {
	ExecContext(c context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(c context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(c context.Context, query string, args ...any) *sql.Row
}

type postgresStore struct {
	db     *sql.DB
	nower  mytime.Nower
	uuider myuuid.UUIDer
}

// NewPostgresStore connects to the database identified by dsn and creates the tables when missing
func NewPostgresStore(c context.Context, dsn string, nower mytime.Nower, uuider myuuid.UUIDer) (CartStore, func(), error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error opening database")
	}

	err = db.PingContext(c)
	if err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "error connecting to database")
	}

	_, err = db.ExecContext(c, schema)
	if err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "error creating schema")
	}

	return newPostgresStore(db, nower, uuider), func() {
		db.Close()
	}, nil
}

func newPostgresStore(db *sql.DB, nower mytime.Nower, uuider myuuid.UUIDer) *postgresStore {
	return &postgresStore{
		db:     db,
		nower:  nower,
		uuider: uuider,
	}
}

func (s *postgresStore) querier(c context.Context) querier {
	if tx, ok := c.Value(ctxTxKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

func (s *postgresStore) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	if _, ok := c.Value(ctxTxKey{}).(*sql.Tx); ok {
		return f(c)
	}

	tx, err := s.db.BeginTx(c, nil)
	if err != nil {
		return errors.Wrap(err, "error starting transaction")
	}

	// Serialize with all other cart transactions until commit or rollback
	_, err = tx.ExecContext(c, lockCartQuery, cartLockID)
	if err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, "error locking cart")
	}

	err = f(context.WithValue(c, ctxTxKey{}, tx))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	err = tx.Commit()
	if err != nil {
		return errors.Wrap(err, "error committing transaction")
	}
	return nil
}

func (s *postgresStore) GetCart(c context.Context) (cartmodel.Cart, error) {
	q := s.querier(c)

	cart := cartmodel.Cart{}
	var lastModified sql.NullTime
	err := q.QueryRowContext(c, selectCartQuery).Scan(&cart.UID, &cart.CreatedAt, &lastModified)
	if errors.Is(err, sql.ErrNoRows) {
		return s.createCart(c, q)
	}
	if err != nil {
		return cartmodel.Cart{}, errors.Wrap(err, "error fetching cart")
	}
	if lastModified.Valid {
		cart.LastModified = &lastModified.Time
	}

	cart.Lines, err = s.getLines(c, q, cart.UID)
	if err != nil {
		return cartmodel.Cart{}, err
	}

	return cart, nil
}

func (s *postgresStore) createCart(c context.Context, q querier) (cartmodel.Cart, error) {
	cart := cartmodel.NewCart(s.uuider.Create(), s.nower.Now())
	_, err := q.ExecContext(c, insertCartQuery, cart.UID, cart.CreatedAt)
	if err != nil {
		return cartmodel.Cart{}, errors.Wrapf(err, "error creating cart %s", cart.UID)
	}
	return cart, nil
}

func (s *postgresStore) getLines(c context.Context, q querier, cartUID string) ([]cartmodel.CartLine, error) {
	rows, err := q.QueryContext(c, selectLinesQuery, cartUID)
	if err != nil {
		return nil, errors.Wrapf(err, "error fetching lines of cart %s", cartUID)
	}
	defer rows.Close()

	lines := []cartmodel.CartLine{}
	for rows.Next() {
		line := cartmodel.CartLine{}
		err := rows.Scan(&line.ProductUID, &line.Quantity)
		if err != nil {
			return nil, errors.Wrapf(err, "error scanning line of cart %s", cartUID)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (s *postgresStore) UpdateCart(c context.Context, cart cartmodel.Cart) error {
	q := s.querier(c)

	lastModified := s.nower.Now()
	if cart.LastModified != nil {
		lastModified = *cart.LastModified
	}
	_, err := q.ExecContext(c, touchCartQuery, cart.UID, lastModified)
	if err != nil {
		return errors.Wrapf(err, "error updating cart %s", cart.UID)
	}

	for idx, line := range cart.Lines {
		_, err := q.ExecContext(c, upsertLineQuery, cart.UID, idx, line.ProductUID, line.Quantity)
		if err != nil {
			return errors.Wrapf(err, "error storing line %s of cart %s", line.ProductUID, cart.UID)
		}
	}
	return nil
}

func (s *postgresStore) EmptyCart(c context.Context, cart cartmodel.Cart) error {
	q := s.querier(c)

	_, err := q.ExecContext(c, deleteCartQuery, cart.UID)
	if err != nil {
		return errors.Wrapf(err, "error deleting cart %s", cart.UID)
	}

	_, err = s.createCart(c, q)
	return err
}

func (s *postgresStore) GetPricesForCartProducts(c context.Context, cart cartmodel.Cart) ([]cartmodel.Product, error) {
	rows, err := s.querier(c).QueryContext(c, selectPricesQuery, pq.Array(cart.ProductUIDs()))
	if err != nil {
		return nil, errors.Wrap(err, "error fetching prices")
	}
	defer rows.Close()

	products := []cartmodel.Product{}
	for rows.Next() {
		p := cartmodel.Product{}
		err := rows.Scan(&p.UID, &p.Name, &p.Price)
		if err != nil {
			return nil, errors.Wrap(err, "error scanning price")
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *postgresStore) ProductExists(c context.Context, productUID string) (bool, error) {
	exists := false
	err := s.querier(c).QueryRowContext(c, productExistsQuery, productUID).Scan(&exists)
	if err != nil {
		return false, errors.Wrapf(err, "error checking product %s", productUID)
	}
	return exists, nil
}

func (s *postgresStore) SeedCatalog(c context.Context, products []cartmodel.Product) error {
	tx, err := s.db.BeginTx(c, nil)
	if err != nil {
		return errors.Wrap(err, "error starting transaction")
	}

	for _, p := range products {
		_, err := tx.ExecContext(c, upsertProductQuery, p.UID, p.Name, p.Price)
		if err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "error seeding product %s", p.UID)
		}
	}

	return tx.Commit()
}

var _ CartStore = &postgresStore{}
