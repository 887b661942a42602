package model

import "time"

type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type SubCategory struct {
	ID         int       `json:"id"`
	CategoryID int       `json:"category_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserInterest (user, subcategory) 唯一对
type UserInterest struct {
	ID            int          `json:"id"`
	UserID        int          `json:"user_id"`
	SubCategoryID int          `json:"subcategory_id"`
	CreatedAt     time.Time    `json:"created_at"`
	SubCategory   *SubCategory `json:"subcategory,omitempty"`
}
