package mysql

import (
	"database/sql"

	"social-network-backend/internal/model"
)

type interestRepository struct {
	db *sql.DB
}

func NewInterestRepository(db *sql.DB) *interestRepository {
	return &interestRepository{db: db}
}

func (r *interestRepository) ListCategories() ([]*model.Category, error) {
	rows, err := r.db.Query(`SELECT id, name, created_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

func (r *interestRepository) ListSubCategories(categoryID int) ([]*model.SubCategory, error) {
	rows, err := r.db.Query(`SELECT id, category_id, name, created_at FROM subcategories WHERE category_id = ? ORDER BY name ASC`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*model.SubCategory
	for rows.Next() {
		var s model.SubCategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}

func (r *interestRepository) FindSubCategoryByID(id int) (*model.SubCategory, error) {
	var s model.SubCategory
	err := r.db.QueryRow(`SELECT id, category_id, name, created_at FROM subcategories WHERE id = ?`, id).Scan(
		&s.ID, &s.CategoryID, &s.Name, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// CreateUserInterest 幂等创建，唯一键 (user_id, subcategory_id) 冲突时返回已有记录
func (r *interestRepository) CreateUserInterest(interest *model.UserInterest) (bool, error) {
	result, err := r.db.Exec(`INSERT INTO user_interests (user_id, subcategory_id, created_at) VALUES (?, ?, NOW())`,
		interest.UserID, interest.SubCategoryID)
	if err != nil {
		if isDuplicateEntry(err) {
			var existing model.UserInterest
			ferr := r.db.QueryRow(`SELECT id, user_id, subcategory_id, created_at FROM user_interests
				WHERE user_id = ? AND subcategory_id = ?`, interest.UserID, interest.SubCategoryID).Scan(
				&existing.ID, &existing.UserID, &existing.SubCategoryID, &existing.CreatedAt)
			if ferr != nil {
				return false, ferr
			}
			*interest = existing
			return false, nil
		}
		return false, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return false, err
	}
	interest.ID = int(id)
	return true, nil
}

func (r *interestRepository) ListUserInterests(userID int) ([]*model.UserInterest, error) {
	query := `
        SELECT i.id, i.user_id, i.subcategory_id, i.created_at,
               s.id, s.category_id, s.name, s.created_at
        FROM user_interests i
        JOIN subcategories s ON i.subcategory_id = s.id
        WHERE i.user_id = ?
        ORDER BY i.created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interests []*model.UserInterest
	for rows.Next() {
		var i model.UserInterest
		var s model.SubCategory
		err := rows.Scan(
			&i.ID, &i.UserID, &i.SubCategoryID, &i.CreatedAt,
			&s.ID, &s.CategoryID, &s.Name, &s.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		i.SubCategory = &s
		interests = append(interests, &i)
	}
	return interests, rows.Err()
}

func (r *interestRepository) DeleteUserInterest(userID, id int) error {
	result, err := r.db.Exec(`DELETE FROM user_interests WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
