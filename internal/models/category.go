package models

// Category is a read-only reference entity.
type Category struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
	Slug string `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
}

func (Category) TableName() string {
	return "categories"
}
