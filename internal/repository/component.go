package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/easyui/easyui-backend/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	componentColumns = `c.id, c.name, c.description, c.html, c.css, c.js, c.preview_url, c.type, c.framework,
						c.price::text, c.discount_price::text, c.views,
						(SELECT count(*) FROM component_likes cl WHERE cl.component_id = c.id) AS likes,
						c.created_by, c.created_at, c.updated_at, c.is_active`

	insertComponentQuery = `
						INSERT INTO components (id, name, description, html, css, js, preview_url, type, framework, price, discount_price, created_by)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`
	updateComponentQuery = `
						UPDATE components
						SET name = $1, description = $2, html = $3, css = $4, js = $5, preview_url = $6,
							type = $7, framework = $8, price = $9, discount_price = $10, updated_at = now()
						WHERE id = $11 AND is_active = TRUE
`
	softDeleteComponentQuery = `
						UPDATE components
						SET is_active = FALSE, updated_at = now()
						WHERE id = $1 AND is_active = TRUE
`
	incrementViewsQuery = `
						UPDATE components
						SET views = views + 1
						WHERE id = $1 AND is_active = TRUE
`
	insertComponentTagQuery = `
						INSERT INTO component_tags (component_id, tag_id)
						VALUES ($1, $2)
						ON CONFLICT DO NOTHING
`
	selectTagsForComponentQuery = `
						SELECT t.id, t.name FROM tags t
						JOIN component_tags ct ON ct.tag_id = t.id
						WHERE ct.component_id = $1
						ORDER BY t.name
`
	insertLikeQuery = `
						INSERT INTO component_likes (user_id, component_id)
						VALUES ($1, $2)
						ON CONFLICT DO NOTHING
`
	deleteLikeQuery = `
						DELETE FROM component_likes
						WHERE user_id = $1 AND component_id = $2
`
	selectLikeCountQuery = `
						SELECT count(*) FROM component_likes
						WHERE component_id = $1
`
)

// ComponentRepository provides access to component storage
type ComponentRepository struct {
	db *postgres.DB
}

// NewComponentRepository creates new ComponentRepository instance
func NewComponentRepository(db *postgres.DB) *ComponentRepository {
	return &ComponentRepository{db: db}
}

func scanComponent(row pgx.Row, c *models.Component) error {
	var price string
	var discount *string
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.HTML, &c.CSS, &c.JS, &c.PreviewURL,
		&c.Type, &c.Framework, &price, &discount, &c.Views, &c.Likes,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt, &c.IsActive); err != nil {
		return err
	}

	p, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	c.Price = p

	if discount != nil {
		d, err := decimal.NewFromString(*discount)
		if err != nil {
			return err
		}
		c.DiscountPrice = &d
	}

	return nil
}

// CreateComponent inserts new component to database
func (cr *ComponentRepository) CreateComponent(ctx context.Context, c *models.Component) (*models.Component, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	var discount *string
	if c.DiscountPrice != nil {
		s := c.DiscountPrice.String()
		discount = &s
	}

	_, err := cr.db.Exec(ctx, insertComponentQuery, c.ID, c.Name, c.Description, c.HTML, c.CSS, c.JS,
		c.PreviewURL, c.Type, c.Framework, c.Price.String(), discount, c.CreatedBy)
	if err != nil {
		return nil, err
	}

	return cr.GetComponentByID(ctx, c.ID)
}

// GetComponentByID returns component with its tags
func (cr *ComponentRepository) GetComponentByID(ctx context.Context, id uuid.UUID) (*models.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components c WHERE c.id = $1 AND c.is_active = TRUE`

	c := models.Component{}
	if err := scanComponent(cr.db.QueryRow(ctx, query, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	tags, err := cr.getTags(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Tags = tags

	return &c, nil
}

// ListComponents returns page of components matching filter
func (cr *ComponentRepository) ListComponents(ctx context.Context, filter models.ComponentFilter) ([]models.Component, error) {
	filter.Normalize()

	var (
		where = []string{"c.is_active = TRUE"}
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Keyword != "" {
		p := arg("%" + filter.Keyword + "%")
		where = append(where, fmt.Sprintf("(c.name ILIKE %s OR c.description ILIKE %s)", p, p))
	}
	if filter.Framework != "" {
		where = append(where, "c.framework = "+arg(filter.Framework))
	}
	if filter.Type != "" {
		where = append(where, "c.type = "+arg(filter.Type))
	}
	if filter.MinPrice != nil {
		where = append(where, "c.price >= "+arg(filter.MinPrice.String())+"::numeric")
	}
	if filter.MaxPrice != nil {
		where = append(where, "c.price <= "+arg(filter.MaxPrice.String())+"::numeric")
	}
	if len(filter.TagIDs) > 0 {
		where = append(where, "c.id IN (SELECT ct.component_id FROM component_tags ct WHERE ct.tag_id = ANY("+arg(filter.TagIDs)+"))")
	}

	// sort keys map to fixed expressions, user input is never interpolated
	var orderBy string
	switch filter.SortBy {
	case models.SortPriceAsc:
		orderBy = "c.price ASC"
	case models.SortPriceDesc:
		orderBy = "c.price DESC"
	case models.SortLikesDesc:
		orderBy = "likes DESC"
	case models.SortViewsDesc:
		orderBy = "c.views DESC"
	case models.SortPopular:
		orderBy = "(c.views + 3 * (SELECT count(*) FROM component_likes cl2 WHERE cl2.component_id = c.id)) DESC"
	default:
		orderBy = "c.created_at DESC"
	}

	query := `SELECT ` + componentColumns + ` FROM components c WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY ` + orderBy +
		` LIMIT ` + arg(filter.PageSize) + ` OFFSET ` + arg((filter.Page-1)*filter.PageSize)

	rows, err := cr.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	components := []models.Component{}
	for rows.Next() {
		c := models.Component{}
		if err := scanComponent(rows, &c); err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range components {
		tags, err := cr.getTags(ctx, components[i].ID)
		if err != nil {
			return nil, err
		}
		components[i].Tags = tags
	}

	return components, nil
}

// UpdateComponent updates component fields
func (cr *ComponentRepository) UpdateComponent(ctx context.Context, c *models.Component) error {
	var discount *string
	if c.DiscountPrice != nil {
		s := c.DiscountPrice.String()
		discount = &s
	}

	cmd, err := cr.db.Exec(ctx, updateComponentQuery, c.Name, c.Description, c.HTML, c.CSS, c.JS,
		c.PreviewURL, c.Type, c.Framework, c.Price.String(), discount, c.ID)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// DeleteComponent soft-deletes component
func (cr *ComponentRepository) DeleteComponent(ctx context.Context, id uuid.UUID) error {
	cmd, err := cr.db.Exec(ctx, softDeleteComponentQuery, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// IncrementViews increments component views counter
func (cr *ComponentRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := cr.db.Exec(ctx, incrementViewsQuery, id)
	return err
}

// AddTags attaches tags to component
func (cr *ComponentRepository) AddTags(ctx context.Context, componentID uuid.UUID, tagIDs []uuid.UUID) error {
	for _, tagID := range tagIDs {
		if _, err := cr.db.Exec(ctx, insertComponentTagQuery, componentID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// ToggleLike switches like state for (user, component) and returns new state with count
func (cr *ComponentRepository) ToggleLike(ctx context.Context, userID, componentID uuid.UUID) (bool, int64, error) {
	liked := false

	cmd, err := cr.db.Exec(ctx, insertLikeQuery, userID, componentID)
	if err != nil {
		return false, 0, err
	}
	if cmd.RowsAffected() > 0 {
		liked = true
	} else {
		if _, err := cr.db.Exec(ctx, deleteLikeQuery, userID, componentID); err != nil {
			return false, 0, err
		}
	}

	var count int64
	if err := cr.db.QueryRow(ctx, selectLikeCountQuery, componentID).Scan(&count); err != nil {
		return false, 0, err
	}

	return liked, count, nil
}

func (cr *ComponentRepository) getTags(ctx context.Context, componentID uuid.UUID) ([]models.Tag, error) {
	rows, err := cr.db.Query(ctx, selectTagsForComponentQuery, componentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		tag := models.Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}
