// internal/models/category.go
package models

type Category struct {
	BaseModel
	Name string `json:"name" gorm:"uniqueIndex;size:64;not null"`

	Listings []Listing `json:"listings,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Category) TableName() string {
	return "categories"
}
