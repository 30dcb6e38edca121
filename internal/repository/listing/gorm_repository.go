// File: internal/repository/listing/gorm_repository.go
package listing

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iyunix/campus-market/internal/domain"
)

// listingRecord is the row shape of a listing. Position keeps collection order.
type listingRecord struct {
	ID              string    `gorm:"primaryKey;size:36"`
	Category        string    `gorm:"primaryKey;size:16"`
	Position        int       `gorm:"not null;index"`
	SellerName      string    `gorm:"size:255"`
	Email           string    `gorm:"size:255;index"`
	ContactNumber   string    `gorm:"size:64"`
	WhatsappNumber  string    `gorm:"size:64"`
	ItemName        string    `gorm:"size:255;not null"`
	ItemDescription string    `gorm:"type:text"`
	Price           float64   `gorm:"not null"`
	PricePeriod     string    `gorm:"size:64"`
	Images          []string  `gorm:"serializer:json"`
	IsPublished     bool      `gorm:"not null;default:false;index"`
	OTPVerified     bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `gorm:"autoCreateTime:false"`
}

func (listingRecord) TableName() string {
	return "listings"
}

// OpenSQLite opens the SQLite database with a busy timeout so readers wait out a replace.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the listings table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&listingRecord{})
}

// GormRepository stores one category's collection as rows of the shared listings table.
type GormRepository struct {
	db       *gorm.DB
	category domain.Category
	logger   Logger
}

// NewGormRepository creates a repository for category on an already migrated db.
func NewGormRepository(db *gorm.DB, category domain.Category, logger Logger) *GormRepository {
	return &GormRepository{db: db, category: category, logger: logger}
}

func (r *GormRepository) Load(ctx context.Context) []domain.Listing {
	var records []listingRecord
	err := r.db.WithContext(ctx).
		Where("category = ?", string(r.category)).
		Order("position asc").
		Find(&records).Error
	if err != nil {
		r.logger.Warn("listing rows unreadable, treating as empty", "category", r.category, "error", err)
		return []domain.Listing{}
	}

	listings := make([]domain.Listing, 0, len(records))
	for _, rec := range records {
		listings = append(listings, rec.toDomain())
	}
	return listings
}

// Replace swaps the category's rows inside one transaction.
func (r *GormRepository) Replace(ctx context.Context, listings []domain.Listing) error {
	records := make([]listingRecord, 0, len(listings))
	for i, l := range listings {
		records = append(records, r.fromDomain(i, l))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category = ?", string(r.category)).Delete(&listingRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, 100).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace %s listings: %w", r.category, err)
	}
	return nil
}

func (r *GormRepository) fromDomain(position int, l domain.Listing) listingRecord {
	images := l.Images
	if images == nil {
		images = []string{}
	}
	return listingRecord{
		ID:              l.ID,
		Category:        string(r.category),
		Position:        position,
		SellerName:      l.SellerName,
		Email:           l.Email,
		ContactNumber:   l.ContactNumber,
		WhatsappNumber:  l.WhatsappNumber,
		ItemName:        l.ItemName,
		ItemDescription: l.ItemDescription,
		Price:           l.Price,
		PricePeriod:     l.PricePeriod,
		Images:          images,
		IsPublished:     l.IsPublished,
		OTPVerified:     l.OTPVerified,
		CreatedAt:       l.CreatedAt,
	}
}

func (rec listingRecord) toDomain() domain.Listing {
	images := rec.Images
	if images == nil {
		images = []string{}
	}
	return domain.Listing{
		ID:              rec.ID,
		Category:        domain.Category(rec.Category),
		SellerName:      rec.SellerName,
		Email:           rec.Email,
		ContactNumber:   rec.ContactNumber,
		WhatsappNumber:  rec.WhatsappNumber,
		ItemName:        rec.ItemName,
		ItemDescription: rec.ItemDescription,
		Price:           rec.Price,
		PricePeriod:     rec.PricePeriod,
		Images:          images,
		IsPublished:     rec.IsPublished,
		OTPVerified:     rec.OTPVerified,
		CreatedAt:       rec.CreatedAt,
	}
}
