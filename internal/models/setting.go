package models

// Setting is an untyped key/value row. Consumers parse the value; the
// settings package exposes a typed snapshot on top of this table.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string
}
