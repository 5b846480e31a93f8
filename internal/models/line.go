package models

// TableLine is one record line of a table when tables are kept in PostgreSQL
// instead of flat files.
type TableLine struct {
	ID    uint   `gorm:"primarykey"`
	Table string `gorm:"column:table_name;index;size:64;not null"`
	Line  string `gorm:"not null"`
}
