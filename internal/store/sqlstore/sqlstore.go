package sqlstore

import (
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/idilsaglam/ohmyblood/internal/model"
	"github.com/idilsaglam/ohmyblood/internal/store"
)

const FileName = "readings.db"

// Row is the table layout. Timestamps are unix millis so ordering and
// range scans stay on an integer index.
type Row struct {
	ID        string `gorm:"primaryKey"`
	Timestamp int64  `gorm:"index;not null"`
	Systolic  int    `gorm:"not null"`
	Diastolic int    `gorm:"not null"`
	HeartRate int    `gorm:"not null"`
	LeftHand  bool
	Note      string
}

func (Row) TableName() string { return "readings" }

type Backend struct {
	db *gorm.DB
}

// Open opens (or creates) dir/readings.db.
func Open(dir string) (*Backend, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "mkdir")
	}
	return OpenFile(filepath.Join(dir, FileName))
}

// OpenFile opens a database at an explicit DSN; ":memory:" works for tests.
func OpenFile(filename string) (*Backend, error) {
	db, err := gorm.Open(sqlite.Open(filename), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	if err := db.AutoMigrate(&Row{}); err != nil {
		return nil, errors.Wrap(err, "migrate readings")
	}
	return &Backend{db: db}, nil
}

func (b *Backend) Insert(r model.Reading) error {
	return b.db.Transaction(func(tx *gorm.DB) error {
		row := toRow(r)
		if res := tx.Create(&row); res.Error != nil {
			return errors.Wrap(res.Error, "create")
		}
		return nil
	})
}

func (b *Backend) DeleteAll(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return b.db.Transaction(func(tx *gorm.DB) error {
		if res := tx.Where("id IN ?", ids).Delete(&Row{}); res.Error != nil {
			return errors.Wrap(res.Error, "delete")
		}
		return nil
	})
}

func (b *Backend) QueryAll(dir store.Direction) ([]model.Reading, error) {
	order := "timestamp asc, rowid asc"
	if dir == store.Descending {
		order = "timestamp desc, rowid asc"
	}
	var rows []Row
	if tx := b.db.Order(order).Find(&rows); tx.Error != nil {
		return nil, errors.Wrap(tx.Error, "find")
	}
	out := make([]model.Reading, len(rows))
	for i, row := range rows {
		out[i] = fromRow(row)
	}
	return out, nil
}

func (b *Backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return errors.Wrap(err, "db handle")
	}
	return sqlDB.Close()
}

func toRow(r model.Reading) Row {
	return Row{
		ID:        r.ID,
		Timestamp: r.Timestamp.UnixMilli(),
		Systolic:  r.Systolic,
		Diastolic: r.Diastolic,
		HeartRate: r.HeartRate,
		LeftHand:  r.LeftHand,
		Note:      r.Note,
	}
}

func fromRow(row Row) model.Reading {
	return model.Reading{
		ID:        row.ID,
		Timestamp: time.UnixMilli(row.Timestamp),
		Systolic:  row.Systolic,
		Diastolic: row.Diastolic,
		HeartRate: row.HeartRate,
		LeftHand:  row.LeftHand,
		Note:      row.Note,
	}
}
