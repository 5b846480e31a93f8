package storage

import (
	"context"
	"fmt"

	"github.com/s/courseEnrollment/internal/models"
	"gorm.io/gorm"
)

// DBBackend keeps the lines of one table as rows of the table_lines relation,
// ordered by id.
type DBBackend struct {
	db    *gorm.DB
	table string
}

func NewDBBackend(db *gorm.DB, table string) *DBBackend {
	return &DBBackend{db: db, table: table}
}

func (b *DBBackend) ReadLines(ctx context.Context) ([]string, error) {
	var rows []models.TableLine
	err := b.db.WithContext(ctx).
		Where("table_name = ?", b.table).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read %s lines: %w", b.table, err)
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, r.Line)
	}
	return lines, nil
}

func (b *DBBackend) AppendLine(ctx context.Context, line string) error {
	row := models.TableLine{Table: b.table, Line: line}
	if err := b.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to append %s line: %w", b.table, err)
	}
	return nil
}

// WriteLines swaps the table contents inside one transaction.
func (b *DBBackend) WriteLines(ctx context.Context, lines []string) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("table_name = ?", b.table).Delete(&models.TableLine{}).Error; err != nil {
			return fmt.Errorf("failed to clear %s lines: %w", b.table, err)
		}
		if len(lines) == 0 {
			return nil
		}

		rows := make([]models.TableLine, 0, len(lines))
		for _, l := range lines {
			rows = append(rows, models.TableLine{Table: b.table, Line: l})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to write %s lines: %w", b.table, err)
		}
		return nil
	})
}
