package models

import (
	"context"
	"fmt"

	"bitbucket.org/lcconsulting/consulting_backend/config"
	"bitbucket.org/lcconsulting/consulting_backend/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// ReportItem is an aggregate child keyed by (report_id, report_item_nbr).
// The item number is assigned by the engine, never by the caller.
type ReportItem struct {
	ReportId               int            `gorm:"primaryKey;autoIncrement:false" json:"report_id"`
	ReportItemNbr          int            `gorm:"primaryKey;autoIncrement:false" json:"report_item_nbr"`
	ItemType               ReportItemType `gorm:"size:20;not null" json:"item_type"`
	ItemSequenceNbr        int            `gorm:"not null" json:"item_sequence_nbr"`
	ItemDescription        string         `gorm:"type:text;not null" json:"item_description"`
	ItemComplete           *bool          `gorm:"default:false" json:"item_complete"`
	RequestExpectedOutcome *string        `gorm:"type:text;default:null" json:"request_expected_outcome"`
	IssueStatus            *IssueStatus   `gorm:"size:20;default:null" json:"issue_status"`
	IssueActionDescription *string        `gorm:"type:text;default:null" json:"issue_action_description"`
}

// NewReportItem is an item payload inside a report-level create or replace.
// The item type comes from the bucket it arrives in, not the payload.
type NewReportItem struct {
	ItemSequenceNbr        int     `json:"item_sequence_nbr"`
	ItemDescription        *string `json:"item_description"`
	ItemComplete           *bool   `json:"item_complete"`
	RequestExpectedOutcome *string `json:"request_expected_outcome"`
	IssueStatus            *string `json:"issue_status"`
	IssueActionDescription *string `json:"issue_action_description"`
}

func (input *NewReportItem) validate() error {
	if input.ItemDescription == nil {
		return fmt.Errorf("%w: item_description is required", utils.ErrorInvalidInput)
	}
	if input.IssueStatus != nil && !IsValidIssueStatus(*input.IssueStatus) {
		return fmt.Errorf("%w: invalid issue_status %q", utils.ErrorInvalidInput, *input.IssueStatus)
	}
	return nil
}

func (input *NewReportItem) toItem() ReportItem {
	item := ReportItem{
		ItemSequenceNbr:        input.ItemSequenceNbr,
		ItemDescription:        *input.ItemDescription,
		RequestExpectedOutcome: input.RequestExpectedOutcome,
		IssueActionDescription: input.IssueActionDescription,
	}
	if input.ItemComplete != nil {
		item.ItemComplete = input.ItemComplete
	} else {
		item.ItemComplete = utils.NewFalse()
	}
	if input.IssueStatus != nil {
		status := IssueStatus(*input.IssueStatus)
		item.IssueStatus = &status
	}
	return item
}

// NewStandaloneReportItem is an item-level create/update payload. Unlike the
// bucketed form, the caller names the item type here.
type NewStandaloneReportItem struct {
	ItemType               string  `json:"item_type" binding:"required"`
	ItemSequenceNbr        int     `json:"item_sequence_nbr"`
	ItemDescription        *string `json:"item_description"`
	ItemComplete           *bool   `json:"item_complete"`
	RequestExpectedOutcome *string `json:"request_expected_outcome"`
	IssueStatus            *string `json:"issue_status"`
	IssueActionDescription *string `json:"issue_action_description"`
}

func (input *NewStandaloneReportItem) validate() error {
	if !IsValidItemType(input.ItemType) {
		return fmt.Errorf("%w: invalid item_type %q", utils.ErrorInvalidInput, input.ItemType)
	}
	inner := NewReportItem{
		ItemDescription: input.ItemDescription,
		IssueStatus:     input.IssueStatus,
	}
	return inner.validate()
}

// apply replaces all mutable fields of the item: this is a whole-item
// replace, not a patch merge.
func (input *NewStandaloneReportItem) apply(item *ReportItem) {
	item.ItemType = ReportItemType(input.ItemType)
	item.ItemSequenceNbr = input.ItemSequenceNbr
	item.ItemDescription = *input.ItemDescription
	if input.ItemComplete != nil {
		item.ItemComplete = input.ItemComplete
	} else {
		item.ItemComplete = utils.NewFalse()
	}
	if input.IssueStatus != nil {
		status := IssueStatus(*input.IssueStatus)
		item.IssueStatus = &status
	} else {
		item.IssueStatus = nil
	}
	item.RequestExpectedOutcome = input.RequestExpectedOutcome
	item.IssueActionDescription = input.IssueActionDescription
}

// CreateReportItem appends one item to an existing report. The next item
// number derives from the current max inside the same transaction that locks
// the header row, so it cannot race a concurrent full replace: there is one
// numbering authority and it always reads under the lock.
func CreateReportItem(ctx context.Context, reportID int, input *NewStandaloneReportItem) (*ReportItem, error) {
	ctx, span := tracer.Start(ctx, "models.CreateReportItem",
		trace.WithAttributes(attribute.Int("report.id", reportID)))
	defer span.End()

	if err := input.validate(); err != nil {
		return nil, err
	}

	release := lockReport(ctx, reportID)
	defer release()

	db := config.GetDB()
	var item ReportItem
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := fetchReportForUpdate(tx, reportID); err != nil {
			return err
		}

		var maxNbr int
		err := tx.Model(&ReportItem{}).
			Where("report_id = ?", reportID).
			Select("COALESCE(MAX(report_item_nbr), 0)").
			Scan(&maxNbr).Error
		if err != nil {
			return err
		}

		item = ReportItem{ReportId: reportID, ReportItemNbr: maxNbr + 1}
		input.apply(&item)
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func GetReportItem(ctx context.Context, reportID, itemNbr int) (*ReportItem, error) {
	db := config.GetDB()

	var item ReportItem
	err := db.WithContext(ctx).
		Where("report_id = ? AND report_item_nbr = ?", reportID, itemNbr).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListReportItems returns all items for a report in persisted (item number)
// order. An empty result is not-found, matching the list convention.
func ListReportItems(ctx context.Context, reportID int) ([]ReportItem, error) {
	db := config.GetDB()

	var items []ReportItem
	err := db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("report_item_nbr ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, utils.ErrorRecordNotFound
	}
	return items, nil
}

// UpdateReportItem replaces the mutable fields of one item without touching
// the header or any sibling. Validation runs before the write, so a null
// description leaves the stored item untouched.
func UpdateReportItem(ctx context.Context, reportID, itemNbr int, input *NewStandaloneReportItem) (*ReportItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	db := config.GetDB()
	item, err := GetReportItem(ctx, reportID, itemNbr)
	if err != nil {
		return nil, err
	}

	input.apply(item)
	err = db.WithContext(ctx).
		Where("report_id = ? AND report_item_nbr = ?", reportID, itemNbr).
		Save(item).Error
	if err != nil {
		return nil, err
	}
	return item, nil
}

func DeleteReportItem(ctx context.Context, reportID, itemNbr int) error {
	db := config.GetDB()

	item, err := GetReportItem(ctx, reportID, itemNbr)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).
		Where("report_id = ? AND report_item_nbr = ?", reportID, itemNbr).
		Delete(item).Error
}
