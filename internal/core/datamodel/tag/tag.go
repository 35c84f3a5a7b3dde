package tag

type Tag struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;uniqueIndex;not null"`
}

func (Tag) TableName() string {
	return "tags"
}
