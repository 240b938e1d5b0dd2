package orders

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// Create inserts the order. A duplicate payment ID means this payment was
// already persisted (a retried dispatch); the caller treats that as success.
func (r *Repo) Create(ctx context.Context, o *Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// ByPaymentID finds the order persisted for a given payment.
func (r *Repo) ByPaymentID(ctx context.Context, paymentID string) (Order, error) {
	var o Order
	err := r.db.WithContext(ctx).First(&o, "payment_id = ?", paymentID).Error
	return o, err
}

func (r *Repo) Get(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	return o, err
}

// IsDuplicate reports whether err is the MySQL duplicate-entry error.
func IsDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
