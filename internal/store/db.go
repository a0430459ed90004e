package store

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the GORM DB handle and exposes repository helpers. Writes
// serialize behind the mutex so concurrent requests never interleave.
type Database struct {
	gorm *gorm.DB
	mu   sync.Mutex
}

// Open initializes the SQLite-backed decision history at the provided path.
func Open(path string, silent bool) (*Database, error) {
	cfg := &gorm.Config{}
	if silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&DecisionRecord{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		logrus.WithError(err).Warn("enable WAL mode")
	}
	if err := db.Exec("PRAGMA synchronous=NORMAL").Error; err != nil {
		logrus.WithError(err).Warn("set synchronous pragma")
	}
	return &Database{gorm: db}, nil
}

// Close closes the underlying database connection.
func (d *Database) Close() error {
	if d == nil {
		return nil
	}
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveDecision appends a decision history row.
func (d *Database) SaveDecision(record *DecisionRecord) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.gorm.Create(record).Error; err != nil {
		return fmt.Errorf("save decision: %w", err)
	}
	return nil
}

// DecisionQuery filters and pages the decision history.
type DecisionQuery struct {
	RequestID string
	Decision  string
	RiskLevel string
	Role      string
	MinScore  int
	Offset    int
	Limit     int
}

// ListDecisions returns matching rows newest-first plus the total count.
// A negative limit returns every match.
func (d *Database) ListDecisions(query DecisionQuery) ([]DecisionRecord, int64, error) {
	tx := d.gorm.Model(&DecisionRecord{})
	if query.RequestID != "" {
		tx = tx.Where("request_id = ?", query.RequestID)
	}
	if query.Decision != "" {
		tx = tx.Where("decision = ?", query.Decision)
	}
	if query.RiskLevel != "" {
		tx = tx.Where("risk_level = ?", query.RiskLevel)
	}
	if query.Role != "" {
		tx = tx.Where("role = ?", query.Role)
	}
	if query.MinScore > 0 {
		tx = tx.Where("risk_score >= ?", query.MinScore)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count decisions: %w", err)
	}

	tx = tx.Order("created_at DESC")
	if query.Offset > 0 {
		tx = tx.Offset(query.Offset)
	}
	if query.Limit >= 0 {
		limit := query.Limit
		if limit == 0 {
			limit = 100
		}
		tx = tx.Limit(limit)
	}

	var rows []DecisionRecord
	if err := tx.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list decisions: %w", err)
	}
	return rows, total, nil
}

// CountDecisions reports the total number of history rows.
func (d *Database) CountDecisions() (int64, error) {
	var total int64
	if err := d.gorm.Model(&DecisionRecord{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count decisions: %w", err)
	}
	return total, nil
}
