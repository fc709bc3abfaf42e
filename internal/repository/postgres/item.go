package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lendshare-backend/internal/domain"
	"lendshare-backend/internal/repository"

	"github.com/lib/pq"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, owner_id, name, alias, COALESCE(description, ''), COALESCE(parameters, ''), status, price_per_day_cents, refundable_deposit_cents, COALESCE(purchase_price_cents, 0), COALESCE(selling_price_cents, 0), categories, main_image_id, created_on, updated_on, deleted_on`

func (r *itemRepository) Create(ctx context.Context, it *domain.Item) error {
	query := `INSERT INTO items (owner_id, name, alias, description, parameters, status, price_per_day_cents, refundable_deposit_cents, purchase_price_cents, selling_price_cents, categories, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	return r.db.QueryRowContext(ctx, query, it.OwnerID, it.Name, it.Alias, it.Description, it.Parameters, it.Status, it.PricePerDayCents, it.RefundableDepositCents, it.PurchasePriceCents, it.SellingPriceCents, pq.Array(it.Categories), time.Now(), time.Now()).Scan(&it.ID)
}

func (r *itemRepository) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	it := &domain.Item{}
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&it.ID, &it.OwnerID, &it.Name, &it.Alias, &it.Description, &it.Parameters, &it.Status, &it.PricePerDayCents, &it.RefundableDepositCents, &it.PurchasePriceCents, &it.SellingPriceCents, pq.Array(&it.Categories), &it.MainImageID, &it.CreatedOn, &it.UpdatedOn, &it.DeletedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *itemRepository) Update(ctx context.Context, it *domain.Item) error {
	query := `UPDATE items SET name=$1, alias=$2, description=$3, parameters=$4, status=$5, price_per_day_cents=$6, refundable_deposit_cents=$7, purchase_price_cents=$8, selling_price_cents=$9, categories=$10, main_image_id=$11, updated_on=$12 WHERE id=$13`
	_, err := r.db.ExecContext(ctx, query, it.Name, it.Alias, it.Description, it.Parameters, it.Status, it.PricePerDayCents, it.RefundableDepositCents, it.PurchasePriceCents, it.SellingPriceCents, pq.Array(it.Categories), it.MainImageID, time.Now(), it.ID)
	return err
}

func (r *itemRepository) Delete(ctx context.Context, id int32) error {
	query := `UPDATE items SET status = $1, deleted_on = $2, updated_on = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, domain.ItemStatusDeleted, time.Now(), id)
	return err
}

func (r *itemRepository) ListPublic(ctx context.Context, category string, maxPriceCents int32, page, pageSize int32) ([]domain.Item, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + itemColumns + ` FROM items WHERE status = $1`
	args := []interface{}{domain.ItemStatusPublic}
	argIdx := 2
	if category != "" {
		query += fmt.Sprintf(" AND $%d = ANY(categories)", argIdx)
		args = append(args, category)
		argIdx++
	}
	if maxPriceCents > 0 {
		query += fmt.Sprintf(" AND price_per_day_cents <= $%d", argIdx)
		args = append(args, maxPriceCents)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)
	return r.queryItems(ctx, query, args, count)
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Item, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = $1 AND status != $2`
	args := []interface{}{ownerID, domain.ItemStatusDeleted}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY created_on DESC LIMIT $3 OFFSET $4"
	args = append(args, pageSize, offset)
	return r.queryItems(ctx, query, args, count)
}

func (r *itemRepository) queryItems(ctx context.Context, query string, args []interface{}, count int32) ([]domain.Item, int32, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.OwnerID, &it.Name, &it.Alias, &it.Description, &it.Parameters, &it.Status, &it.PricePerDayCents, &it.RefundableDepositCents, &it.PurchasePriceCents, &it.SellingPriceCents, pq.Array(&it.Categories), &it.MainImageID, &it.CreatedOn, &it.UpdatedOn, &it.DeletedOn); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, count, rows.Err()
}
