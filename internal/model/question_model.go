package model

import (
	"gorm.io/datatypes"
)

type Question struct {
	Id       uint           `gorm:"primaryKey;autoIncrement"`
	Category string         `gorm:"type:varchar(100);index"`
	Text     string         `gorm:"type:text;not null"`
	Options  datatypes.JSON `gorm:"type:jsonb"`
}

func (Question) TableName() string {
	return "questions"
}
