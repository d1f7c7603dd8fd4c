// Copyright (c) 2026 Savora. All rights reserved.

// PostgreSQL implementation of the recipe repository.
//
// Steps and ingredients are stored as JSONB documents: they are always
// read and written as a whole, never queried element-wise, so a relational
// breakout would only add joins.
package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/savora-app/savora/internal/access"
	"github.com/savora-app/savora/internal/platform/dberr"
	"github.com/savora-app/savora/internal/platform/postgres"
)

const recipeResource = "Recipe"

// recipeColumns joins the owner's public profile; COALESCE covers recipes
// orphaned by the non-transactional account cascade.
const recipeColumns = `
	r.id, r.user_id, COALESCE(u.name, ''), COALESCE(u.avatar_url, ''),
	r.title, r.image_url, r.description, r.steps, r.ingredients,
	r.cooking_time, r.notes, r.created_at, r.updated_at`

const recipeFrom = ` FROM recipes r LEFT JOIN users u ON u.id = r.user_id`

// PostgresRepository implements [Repository] on a pgx connection pool.
type PostgresRepository struct {
	pool postgres.Pool
}

// NewPostgresRepository creates the PostgreSQL recipe repository.
func NewPostgresRepository(pool postgres.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func scanRecipe(row pgx.Row) (*Recipe, error) {
	entry := &Recipe{}
	var stepsDoc, ingredientsDoc []byte
	var notes *string

	err := row.Scan(
		&entry.ID,
		&entry.Owner.ID,
		&entry.Owner.Name,
		&entry.Owner.Avatar,
		&entry.Title,
		&entry.ImageURL,
		&entry.Description,
		&stepsDoc,
		&ingredientsDoc,
		&entry.CookingTime,
		&notes,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(stepsDoc, &entry.Steps); err != nil {
		return nil, fmt.Errorf("recipe_repo_decode_steps_failed: %w", err)
	}
	if err := json.Unmarshal(ingredientsDoc, &entry.Ingredients); err != nil {
		return nil, fmt.Errorf("recipe_repo_decode_ingredients_failed: %w", err)
	}
	if notes != nil {
		entry.Notes = *notes
	}

	return entry, nil
}

func encodeDoc(value any) ([]byte, error) {
	doc, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("recipe_repo_encode_failed: %w", err)
	}
	return doc, nil
}

// Create persists a new recipe row.
func (repository *PostgresRepository) Create(ctx context.Context, entry *Recipe) error {
	const query = `
		INSERT INTO recipes (id, user_id, title, image_url, description, steps, ingredients,
		                     cooking_time, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	stepsDoc, err := encodeDoc(entry.Steps)
	if err != nil {
		return err
	}
	ingredientsDoc, err := encodeDoc(entry.Ingredients)
	if err != nil {
		return err
	}

	now := time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	var notes *string
	if entry.Notes != "" {
		notes = &entry.Notes
	}

	_, err = repository.pool.Exec(ctx, query,
		entry.ID,
		entry.Owner.ID,
		entry.Title,
		entry.ImageURL,
		entry.Description,
		stepsDoc,
		ingredientsDoc,
		entry.CookingTime,
		notes,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("recipe_repo_create_failed: %w", err), recipeResource)
	}

	return nil
}

// FindByID fetches one recipe within scope. Non-admin scopes fold the
// ownership check into the WHERE clause.
func (repository *PostgresRepository) FindByID(ctx context.Context, scope access.Scope, id string) (*Recipe, error) {
	const query = `SELECT` + recipeColumns + recipeFrom + `
		WHERE r.id = $1 AND ($2 OR r.user_id = $3)`

	entry, err := scanRecipe(repository.pool.QueryRow(ctx, query, id, scope.All, scope.OwnerID))
	if err != nil {
		return nil, dberr.Wrap(err, recipeResource)
	}

	return entry, nil
}

// List returns recipes matching the options, keyword-filtered on the title
// and ordered by creation time.
func (repository *PostgresRepository) List(ctx context.Context, opts ListOptions) ([]*Recipe, error) {
	direction := "DESC"
	if opts.SortAsc {
		direction = "ASC"
	}

	query := `SELECT` + recipeColumns + recipeFrom + `
		WHERE ($1 = '' OR r.user_id = $1)
		  AND ($2 = '' OR r.title ILIKE '%' || $2 || '%')
		ORDER BY r.created_at ` + direction

	rows, err := repository.pool.Query(ctx, query, opts.OwnerID, opts.Keyword)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("recipe_repo_list_failed: %w", err), recipeResource)
	}
	defer rows.Close()

	entries := []*Recipe{}
	for rows.Next() {
		entry, err := scanRecipe(rows)
		if err != nil {
			return nil, dberr.Wrap(err, recipeResource)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, recipeResource)
	}

	return entries, nil
}

// Update applies the non-nil changes in a single scoped statement. The
// owner column is never touched: authorship is fixed at creation.
func (repository *PostgresRepository) Update(ctx context.Context, scope access.Scope, id string, changes Changes) (*Recipe, error) {
	const query = `
		WITH updated AS (
			UPDATE recipes
			SET title        = COALESCE($4, title),
			    image_url    = COALESCE($5, image_url),
			    description  = COALESCE($6, description),
			    steps        = COALESCE($7, steps),
			    ingredients  = COALESCE($8, ingredients),
			    cooking_time = COALESCE($9, cooking_time),
			    notes        = COALESCE($10, notes),
			    updated_at   = $11
			WHERE id = $1 AND ($2 OR user_id = $3)
			RETURNING *
		)
		SELECT` + recipeColumns + ` FROM updated r LEFT JOIN users u ON u.id = r.user_id`

	var stepsDoc, ingredientsDoc []byte
	var err error
	if changes.Steps != nil {
		if stepsDoc, err = encodeDoc(changes.Steps); err != nil {
			return nil, err
		}
	}
	if changes.Ingredients != nil {
		if ingredientsDoc, err = encodeDoc(changes.Ingredients); err != nil {
			return nil, err
		}
	}

	row := repository.pool.QueryRow(ctx, query,
		id, scope.All, scope.OwnerID,
		changes.Title, changes.ImageURL, changes.Description,
		stepsDoc, ingredientsDoc, changes.CookingTime, changes.Notes,
		time.Now(),
	)

	entry, err := scanRecipe(row)
	if err != nil {
		return nil, dberr.Wrap(err, recipeResource)
	}

	return entry, nil
}

// Delete removes a recipe within scope and returns it as it was.
func (repository *PostgresRepository) Delete(ctx context.Context, scope access.Scope, id string) (*Recipe, error) {
	const query = `
		WITH removed AS (
			DELETE FROM recipes
			WHERE id = $1 AND ($2 OR user_id = $3)
			RETURNING *
		)
		SELECT` + recipeColumns + ` FROM removed r LEFT JOIN users u ON u.id = r.user_id`

	entry, err := scanRecipe(repository.pool.QueryRow(ctx, query, id, scope.All, scope.OwnerID))
	if err != nil {
		return nil, dberr.Wrap(err, recipeResource)
	}

	return entry, nil
}

// DeleteByOwner removes every recipe owned by ownerID.
func (repository *PostgresRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	if _, err := repository.pool.Exec(ctx, `DELETE FROM recipes WHERE user_id = $1`, ownerID); err != nil {
		return dberr.Wrap(fmt.Errorf("recipe_repo_delete_by_owner_failed: %w", err), recipeResource)
	}
	return nil
}

// DeleteAll removes every recipe.
func (repository *PostgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := repository.pool.Exec(ctx, `DELETE FROM recipes`); err != nil {
		return dberr.Wrap(fmt.Errorf("recipe_repo_delete_all_failed: %w", err), recipeResource)
	}
	return nil
}
