package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verilens/verilens/src/factcheck"
)

// VerdictRecord stores one issued verdict for later review.
type VerdictRecord struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	RequestID   string    `gorm:"column:request_id;size:36;uniqueIndex"`
	Claim       string    `gorm:"column:claim;type:text"`
	Verdict     string    `gorm:"column:verdict;size:16;index:idx_verdicts_verdict"`
	Confidence  int       `gorm:"column:confidence"`
	Explanation string    `gorm:"column:explanation;type:text"`
	RedFlags    string    `gorm:"column:red_flags;type:text"`   // JSON array
	SourceMode  string    `gorm:"column:source_mode;size:16"`
	SourceURLs  string    `gorm:"column:source_urls;type:text"` // JSON array
	AIModel     string    `gorm:"column:ai_model;size:128"`
	CreatedAt   time.Time `gorm:"index:idx_verdicts_created"`
}

// TableName implements gorm's tabler interface.
func (VerdictRecord) TableName() string {
	return "verdicts"
}

// HistoryStore persists issued verdicts. A nil store is a no-op.
type HistoryStore struct {
	db *gorm.DB
}

// NewHistoryStore returns a new history store instance.
func NewHistoryStore(db *gorm.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Migrate creates the verdicts table when missing.
func (hs *HistoryStore) Migrate() error {
	if hs == nil || hs.db == nil {
		return nil
	}
	return hs.db.AutoMigrate(&VerdictRecord{})
}

// Save persists one verdict and returns the generated request ID.
func (hs *HistoryStore) Save(claim string, verdict *factcheck.CanonicalVerdict, model string) (string, error) {
	if hs == nil || hs.db == nil {
		return "", fmt.Errorf("history store not initialized")
	}

	redFlagsJSON, _ := json.Marshal(verdict.RedFlags)
	urls := make([]string, 0, len(verdict.Sources))
	for _, s := range verdict.Sources {
		urls = append(urls, s.URL)
	}
	urlsJSON, _ := json.Marshal(urls)

	record := VerdictRecord{
		RequestID:   uuid.NewString(),
		Claim:       claim,
		Verdict:     verdict.Verdict,
		Confidence:  verdict.Confidence,
		Explanation: verdict.Explanation,
		RedFlags:    string(redFlagsJSON),
		SourceMode:  string(verdict.SourceMode),
		SourceURLs:  string(urlsJSON),
		AIModel:     model,
		CreatedAt:   time.Now(),
	}

	if err := hs.db.Create(&record).Error; err != nil {
		return "", err
	}
	return record.RequestID, nil
}

// Recent returns the latest verdicts, newest first.
func (hs *HistoryStore) Recent(limit int) ([]VerdictRecord, error) {
	if hs == nil || hs.db == nil {
		return nil, fmt.Errorf("history store not initialized")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var records []VerdictRecord
	err := hs.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}
