package postgres

import (
	"context"
	"database/sql"
	"errors"

	"lendshare-backend/internal/domain"
	"lendshare-backend/internal/repository"
)

type itemCategoryRepository struct {
	db *sql.DB
}

func NewItemCategoryRepository(db *sql.DB) repository.ItemCategoryRepository {
	return &itemCategoryRepository{db: db}
}

func (r *itemCategoryRepository) Create(ctx context.Context, c *domain.ItemCategory) error {
	query := `INSERT INTO item_categories (name, alias, description) VALUES ($1, $2, $3) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.Name, c.Alias, c.Description).Scan(&c.ID)
}

func (r *itemCategoryRepository) GetByID(ctx context.Context, id int32) (*domain.ItemCategory, error) {
	c := &domain.ItemCategory{}
	query := `SELECT id, name, alias, COALESCE(description, '') FROM item_categories WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Alias, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *itemCategoryRepository) List(ctx context.Context) ([]domain.ItemCategory, error) {
	query := `SELECT id, name, alias, COALESCE(description, '') FROM item_categories ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.ItemCategory
	for rows.Next() {
		var c domain.ItemCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Alias, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *itemCategoryRepository) Update(ctx context.Context, c *domain.ItemCategory) error {
	query := `UPDATE item_categories SET name=$1, alias=$2, description=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Alias, c.Description, c.ID)
	return err
}

func (r *itemCategoryRepository) Delete(ctx context.Context, id int32) error {
	query := `DELETE FROM item_categories WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
