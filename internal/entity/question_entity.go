package entity

type Question struct {
	Id       uint
	Category string
	Text     string
	Options  []string
}
