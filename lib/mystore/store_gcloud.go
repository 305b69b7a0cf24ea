package mystore

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/datastore"
	"github.com/go-faster/errors"

	"github.com/MarcGrol/shoppingcart/lib/mylog"
)

const maxTransactionAttempts = 3

var logger = mylog.New("mystore")

type gcloudStore[T any] struct {
	client *datastore.Client
	kind   string
}

func newGcloudStore[T any](c context.Context) (*gcloudStore[T], func(), error) {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	client, err := datastore.NewClient(c, projectID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error creating datastore-client")
	}

	return &gcloudStore[T]{
			client: client,
			kind:   kindOf[T](),
		}, func() {
			client.Close()
		}, nil
}

func kindOf[T any]() string {
	val := new(T)
	kind := fmt.Sprintf("%T", *val)
	if strings.Contains(kind, ".") {
		kind = strings.Split(kind, ".")[1]
	}
	return kind
}

func (s *gcloudStore[T]) key(uid string) *datastore.Key {
	return datastore.NameKey(s.kind, uid, nil)
}

func (s *gcloudStore[T]) transaction(c context.Context) *datastore.Transaction {
	tx, ok := c.Value(ctxTransactionKey{store: s}).(*datastore.Transaction)
	if !ok {
		return nil
	}
	return tx
}

func (s *gcloudStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	if s.transaction(c) != nil {
		return f(c)
	}

	var err error
	for i := 1; i <= maxTransactionAttempts; i++ {
		err = s.runInTransaction(c, f)
		if err != nil {
			if errors.Is(err, datastore.ErrConcurrentTransaction) {
				logger.Log(c, "", mylog.SeverityWarn, "Concurrent transaction error, retrying (%d of %d): %s", i, maxTransactionAttempts, err)
				// force retry: this approach requires idempotency of the business logic
				continue
			}

			return err
		}
		return nil
	}
	return err
}

func (s *gcloudStore[T]) runInTransaction(c context.Context, f func(c context.Context) error) error {
	// Start transaction
	t, err := s.client.NewTransaction(c)
	if err != nil {
		return errors.Wrap(err, "error creating transaction")
	}

	// Shadow original context with new transactional context
	err = f(context.WithValue(c, ctxTransactionKey{store: s}, t))
	if err != nil {
		// Rollback
		rollbackError := t.Rollback()
		if rollbackError != nil {
			logger.Log(c, "", mylog.SeverityError, "error rolling-back transaction %p: %s", t, rollbackError)
		}

		return err
	}

	// Commit
	_, err = t.Commit()
	if err != nil {
		return err
	}

	return nil
}

func (s *gcloudStore[T]) Put(c context.Context, uid string, value T) error {
	var err error
	if tx := s.transaction(c); tx != nil {
		_, err = tx.Put(s.key(uid), &value)
	} else {
		_, err = s.client.Put(c, s.key(uid), &value)
	}
	if err != nil {
		return errors.Wrapf(err, "error storing entity %s with uid %s", s.kind, uid)
	}

	return nil
}

func (s *gcloudStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	value := new(T)

	var err error
	if tx := s.transaction(c); tx != nil {
		err = tx.Get(s.key(uid), value)
	} else {
		err = s.client.Get(c, s.key(uid), value)
	}
	if err != nil {
		if errors.Is(err, datastore.ErrNoSuchEntity) {
			return *value, false, nil
		}
		return *value, false, errors.Wrapf(err, "error fetching entity %s with uid %s", s.kind, uid)
	}

	return *value, true, nil
}

func (s *gcloudStore[T]) GetMulti(c context.Context, uids []string) (map[string]T, error) {
	keys := make([]*datastore.Key, 0, len(uids))
	for _, uid := range uids {
		keys = append(keys, s.key(uid))
	}
	values := make([]T, len(uids))

	var err error
	if tx := s.transaction(c); tx != nil {
		err = tx.GetMulti(keys, values)
	} else {
		err = s.client.GetMulti(c, keys, values)
	}

	return collectMulti(s.kind, uids, values, err)
}

// collectMulti maps the values of a datastore multi-get onto their uids, leaving out the ones that do not exist.
func collectMulti[T any](kind string, uids []string, values []T, err error) (map[string]T, error) {
	missing := make([]bool, len(uids))
	if err != nil {
		var multiErr datastore.MultiError
		if !errors.As(err, &multiErr) {
			return nil, errors.Wrapf(err, "error fetching entities %s", kind)
		}
		for i, e := range multiErr {
			if e == nil {
				continue
			}
			if !errors.Is(e, datastore.ErrNoSuchEntity) {
				return nil, errors.Wrapf(e, "error fetching entity %s with uid %s", kind, uids[i])
			}
			missing[i] = true
		}
	}

	result := make(map[string]T, len(uids))
	for i, uid := range uids {
		if !missing[i] {
			result[uid] = values[i]
		}
	}
	return result, nil
}
