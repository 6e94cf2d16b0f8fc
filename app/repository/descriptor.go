package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-qrplatba/app/entity"
)

var ErrDescriptorAlreadyExists = errors.New("descriptor already exists")

type DescriptorFilter struct {
	CallerService string
	IBAN          string
	Limit         int32
	Offset        int32
}

type DescriptorRepository struct {
	db DBTX
}

func NewDescriptorRepository(db DBTX) *DescriptorRepository {
	return &DescriptorRepository{db: db}
}

const descriptorColumns = `
	id, reference, request_id, caller_service,
	iban, amount, currency, variable_symbol, due_date, message,
	payload, created_at
`

func (r *DescriptorRepository) Create(ctx context.Context, descriptor *entity.Descriptor) error {
	query := `
		INSERT INTO payment_descriptors (
			reference, request_id, caller_service,
			iban, amount, currency, variable_symbol, due_date, message,
			payload, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		descriptor.Reference,
		descriptor.RequestID,
		descriptor.CallerService,
		descriptor.IBAN,
		nullableStringValue(descriptor.Amount),
		descriptor.Currency,
		nullableStringValue(descriptor.VariableSymbol),
		nullableTimeValue(descriptor.DueDate),
		nullableStringValue(descriptor.Message),
		descriptor.Payload,
		descriptor.CreatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDescriptorAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	descriptor.ID = uint64(id)
	return nil
}

func (r *DescriptorRepository) FindByReference(ctx context.Context, reference string) (*entity.Descriptor, error) {
	query := `SELECT ` + descriptorColumns + ` FROM payment_descriptors WHERE reference = ?`
	return r.findOne(ctx, query, reference)
}

func (r *DescriptorRepository) FindByCallerRequestID(ctx context.Context, callerService, requestID string) (*entity.Descriptor, error) {
	query := `SELECT ` + descriptorColumns + ` FROM payment_descriptors WHERE caller_service = ? AND request_id = ?`
	return r.findOne(ctx, query, callerService, requestID)
}

func (r *DescriptorRepository) List(ctx context.Context, filter DescriptorFilter) ([]*entity.Descriptor, error) {
	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 4)

	if filter.CallerService != "" {
		conditions = append(conditions, "caller_service = ?")
		args = append(args, filter.CallerService)
	}
	if filter.IBAN != "" {
		conditions = append(conditions, "iban = ?")
		args = append(args, filter.IBAN)
	}

	query := `SELECT ` + descriptorColumns + ` FROM payment_descriptors`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Descriptor, 0)
	for rows.Next() {
		item, err := scanDescriptor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteCreatedBefore removes at most limit descriptors created before
// cutoff, oldest first.
func (r *DescriptorRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time, limit int32) (int64, error) {
	query := `DELETE FROM payment_descriptors WHERE created_at < ? ORDER BY id ASC LIMIT ?`
	result, err := r.db.ExecContext(ctx, query, cutoff, limit)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *DescriptorRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entity.Descriptor, error) {
	item, err := scanDescriptor(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDescriptor(row rowScanner) (*entity.Descriptor, error) {
	var (
		item           entity.Descriptor
		amount         sql.NullString
		variableSymbol sql.NullString
		dueDate        sql.NullTime
		message        sql.NullString
	)

	err := row.Scan(
		&item.ID,
		&item.Reference,
		&item.RequestID,
		&item.CallerService,
		&item.IBAN,
		&amount,
		&item.Currency,
		&variableSymbol,
		&dueDate,
		&message,
		&item.Payload,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Amount = stringPtrFromNull(amount)
	item.VariableSymbol = stringPtrFromNull(variableSymbol)
	item.DueDate = timePtrFromNull(dueDate)
	item.Message = stringPtrFromNull(message)
	return &item, nil
}
