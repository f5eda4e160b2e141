package models

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/lcconsulting/consulting_backend/config"
	"bitbucket.org/lcconsulting/consulting_backend/utils"
	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var tracer = otel.Tracer("consulting-backend/models")

// Report is the aggregate root. Its items are managed explicitly by the
// functions below, never through gorm associations: every multi-step
// mutation runs in one transaction with the header row locked.
//
// ConsulantId keeps the misspelled wire name; renaming it would break
// every existing API client.
type Report struct {
	ID                  int          `gorm:"primary_key"`
	ClientId            int          `gorm:"index;not null"`
	ClientContactId     int          `gorm:"not null"`
	ConsulantId         int          `gorm:"index;not null"`
	ClientManagerId     int          `gorm:"not null"`
	ReportDate          time.Time    `gorm:"type:date;not null"`
	ReportFromDate      time.Time    `gorm:"type:date;not null"`
	ReportToDate        *time.Time   `gorm:"type:date;default:null"`
	EngagementReference string       `gorm:"size:20;not null"`
	ReportStatus        ReportStatus `gorm:"size:11;not null"`
}

// ReportJSON is the wire shape of a report header. Dates go out as
// YYYY-MM-DD; a null to-date stays null.
type ReportJSON struct {
	Id                  int          `json:"id"`
	ClientId            int          `json:"client_id"`
	ClientContactId     int          `json:"client_contact_id"`
	ConsulantId         int          `json:"consulant_id"`
	ClientManagerId     int          `json:"client_manager_id"`
	ReportDate          string       `json:"report_date"`
	ReportFromDate      string       `json:"report_from_date"`
	ReportToDate        *string      `json:"report_to_date"`
	EngagementReference string       `json:"engagement_reference"`
	ReportStatus        ReportStatus `json:"report_status"`
}

func (r *Report) Format() ReportJSON {
	return ReportJSON{
		Id:                  r.ID,
		ClientId:            r.ClientId,
		ClientContactId:     r.ClientContactId,
		ConsulantId:         r.ConsulantId,
		ClientManagerId:     r.ClientManagerId,
		ReportDate:          utils.FormatDate(r.ReportDate),
		ReportFromDate:      utils.FormatDate(r.ReportFromDate),
		ReportToDate:        utils.FormatDatePtr(r.ReportToDate),
		EngagementReference: r.EngagementReference,
		ReportStatus:        r.ReportStatus,
	}
}

type NewReportHeader struct {
	ClientId            int     `json:"client_id" binding:"required"`
	ClientContactId     int     `json:"client_contact_id" binding:"required"`
	ConsulantId         int     `json:"consulant_id" binding:"required"`
	ClientManagerId     int     `json:"client_manager_id" binding:"required"`
	ReportDate          string  `json:"report_date" binding:"required"`
	ReportFromDate      string  `json:"report_from_date" binding:"required"`
	ReportToDate        *string `json:"report_to_date"`
	EngagementReference string  `json:"engagement_reference" binding:"required"`
	ReportStatus        string  `json:"report_status"`
}

// apply copies the recognized header fields onto the report. Only whitelisted
// fields transfer; the status is handled by the caller because create and
// update treat it differently.
func (input *NewReportHeader) apply(report *Report) error {
	reportDate, err := utils.ParseDate(input.ReportDate)
	if err != nil {
		return err
	}
	fromDate, err := utils.ParseDate(input.ReportFromDate)
	if err != nil {
		return err
	}
	var toDate *time.Time
	if input.ReportToDate != nil && *input.ReportToDate != "" {
		d, err := utils.ParseDate(*input.ReportToDate)
		if err != nil {
			return err
		}
		toDate = &d
	}

	report.ClientId = input.ClientId
	report.ClientContactId = input.ClientContactId
	report.ConsulantId = input.ConsulantId
	report.ClientManagerId = input.ClientManagerId
	report.ReportDate = reportDate
	report.ReportFromDate = fromDate
	report.ReportToDate = toDate
	report.EngagementReference = input.EngagementReference
	return nil
}

type NewReportItems struct {
	RequestedTasks   []NewReportItem `json:"requested_tasks"`
	WorkUndertaken   []NewReportItem `json:"work_undertaken"`
	FollowUpTasks    []NewReportItem `json:"follow_up_tasks"`
	CustomerTasks    []NewReportItem `json:"customer_tasks"`
	IssuesIdentified []NewReportItem `json:"issues_identified"`
}

func (in *NewReportItems) bucket(name string) []NewReportItem {
	switch name {
	case "requested_tasks":
		return in.RequestedTasks
	case "work_undertaken":
		return in.WorkUndertaken
	case "follow_up_tasks":
		return in.FollowUpTasks
	case "customer_tasks":
		return in.CustomerTasks
	case "issues_identified":
		return in.IssuesIdentified
	}
	return nil
}

type NewReport struct {
	Header      *NewReportHeader `json:"header" binding:"required"`
	ReportItems NewReportItems   `json:"report_items"`
}

// BuildReportItems tags each item with the item type of the bucket it arrived
// in and assigns report_item_nbr as one monotonically increasing sequence
// starting at 1, walking the buckets in the fixed category order and
// preserving input order inside each bucket. All enumeration and
// required-field checks happen here, before anything touches the store.
func BuildReportItems(input NewReportItems) ([]ReportItem, error) {
	var items []ReportItem
	nbr := 0
	for _, category := range ReportItemCategories {
		for _, in := range input.bucket(category.Name) {
			if err := in.validate(); err != nil {
				return nil, fmt.Errorf("%s: %w", category.Name, err)
			}
			nbr++
			item := in.toItem()
			item.ReportItemNbr = nbr
			item.ItemType = category.ItemType
			items = append(items, item)
		}
	}
	return items, nil
}

// DetailedReport is the categorized read assembly: the header plus the five
// buckets, each always present even when empty.
type DetailedReport struct {
	Id          int                    `json:"id"`
	Header      ReportJSON             `json:"header"`
	ReportItems CategorizedReportItems `json:"report_items"`
}

type CategorizedReportItems struct {
	RequestedTasks   []ReportItem `json:"requested_tasks"`
	WorkUndertaken   []ReportItem `json:"work_undertaken"`
	FollowUpTasks    []ReportItem `json:"follow_up_tasks"`
	CustomerTasks    []ReportItem `json:"customer_tasks"`
	IssuesIdentified []ReportItem `json:"issues_identified"`
}

// CategorizeReportItems partitions items (assumed ordered by item number)
// into the five buckets. Buckets marshal as empty lists, never null.
func CategorizeReportItems(items []ReportItem) CategorizedReportItems {
	out := CategorizedReportItems{
		RequestedTasks:   []ReportItem{},
		WorkUndertaken:   []ReportItem{},
		FollowUpTasks:    []ReportItem{},
		CustomerTasks:    []ReportItem{},
		IssuesIdentified: []ReportItem{},
	}
	for _, item := range items {
		switch item.ItemType {
		case ItemTypeRequestedTask:
			out.RequestedTasks = append(out.RequestedTasks, item)
		case ItemTypeWorkUndertaken:
			out.WorkUndertaken = append(out.WorkUndertaken, item)
		case ItemTypeFollowUpTask:
			out.FollowUpTasks = append(out.FollowUpTasks, item)
		case ItemTypeCustomerTask:
			out.CustomerTasks = append(out.CustomerTasks, item)
		case ItemTypeIssueIdentified:
			out.IssuesIdentified = append(out.IssuesIdentified, item)
		}
	}
	return out
}

func assembleDetailedReport(report *Report, items []ReportItem) *DetailedReport {
	return &DetailedReport{
		Id:          report.ID,
		Header:      report.Format(),
		ReportItems: CategorizeReportItems(items),
	}
}

func (input *NewReport) validateReferences(ctx context.Context) error {
	if err := utils.ValidateResourceId[Client](ctx, input.Header.ClientId); err != nil {
		return referenceError(err, "client not found")
	}
	if err := utils.ValidateResourceId[ClientContact](ctx, input.Header.ClientContactId); err != nil {
		return referenceError(err, "client contact not found")
	}
	if err := utils.ValidateResourceId[Contact](ctx, input.Header.ConsulantId); err != nil {
		return referenceError(err, "consultant not found")
	}
	if err := utils.ValidateResourceId[Contact](ctx, input.Header.ClientManagerId); err != nil {
		return referenceError(err, "client manager not found")
	}
	return nil
}

// Broken references in a write payload are bad input, not a missing resource.
func referenceError(err error, msg string) error {
	if err == utils.ErrorRecordNotFound {
		return fmt.Errorf("%w: %s", utils.ErrorInvalidInput, msg)
	}
	return err
}

// lockReport takes a best-effort distributed lock per report. The DB
// transaction with the header row locked is the correctness authority;
// Redis only narrows the window concurrent writers spend blocked inside
// the database.
func lockReport(ctx context.Context, reportID int) func() {
	logger := config.GetLogger()
	locker := config.GetRedisLock()
	if locker == nil {
		return func() {}
	}

	lock, err := locker.Obtain(ctx, fmt.Sprintf("report:%d", reportID), 30*time.Second, nil)
	if err != nil {
		if err != redislock.ErrNotObtained {
			logger.WithFields(logrus.Fields{
				"module":    "report.go",
				"report_id": reportID,
			}).Warn("error obtaining report lock; proceeding without it: " + err.Error())
		}
		return func() {}
	}
	return func() {
		if releaseErr := lock.Release(ctx); releaseErr != nil && releaseErr != redislock.ErrLockNotHeld {
			logger.WithFields(logrus.Fields{
				"module":    "report.go",
				"report_id": reportID,
			}).Warn("failed to release report lock: " + releaseErr.Error())
		}
	}
}

// fetchReportForUpdate loads the header inside tx with a row lock so the
// delete-all / renumber / reinsert sequence is atomic against other writers
// on the same report.
func fetchReportForUpdate(tx *gorm.DB, reportID int) (*Report, error) {
	var report Report
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&report, reportID).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// CreateReport persists the header and its items as one unit of work. The
// header status is always forced to "new" on create; a caller-supplied status
// is ignored.
func CreateReport(ctx context.Context, input *NewReport) (*DetailedReport, error) {
	ctx, span := tracer.Start(ctx, "models.CreateReport",
		trace.WithAttributes(attribute.Int("report.client_id", input.Header.ClientId)))
	defer span.End()

	var report Report
	if err := input.Header.apply(&report); err != nil {
		return nil, err
	}
	report.ReportStatus = ReportStatusNew

	items, err := BuildReportItems(input.ReportItems)
	if err != nil {
		return nil, err
	}

	if err := input.validateReferences(ctx); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ReportId = report.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return assembleDetailedReport(&report, items), nil
}

func GetReport(ctx context.Context, id int) (*Report, error) {
	db := config.GetDB()

	var report Report
	if err := db.WithContext(ctx).First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func GetDetailedReport(ctx context.Context, id int) (*DetailedReport, error) {
	ctx, span := tracer.Start(ctx, "models.GetDetailedReport",
		trace.WithAttributes(attribute.Int("report.id", id)))
	defer span.End()

	report, err := GetReport(ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	var items []ReportItem
	err = db.WithContext(ctx).
		Where("report_id = ?", id).
		Order("report_item_nbr ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return assembleDetailedReport(report, items), nil
}

// UpdateReport is a full replace, not a merge: every header field is
// overwritten and the entire previous item set is discarded and rewritten
// with numbers starting at 1. Item numbers are positional, so callers must
// resend the complete item set on every update. All validation happens
// before the destructive steps.
func UpdateReport(ctx context.Context, id int, input *NewReport) (*DetailedReport, error) {
	ctx, span := tracer.Start(ctx, "models.UpdateReport",
		trace.WithAttributes(attribute.Int("report.id", id)))
	defer span.End()

	if !IsValidReportStatus(input.Header.ReportStatus) {
		return nil, fmt.Errorf("%w: invalid report_status %q", utils.ErrorInvalidInput, input.Header.ReportStatus)
	}

	items, err := BuildReportItems(input.ReportItems)
	if err != nil {
		return nil, err
	}

	if err := input.validateReferences(ctx); err != nil {
		return nil, err
	}

	release := lockReport(ctx, id)
	defer release()

	db := config.GetDB()
	var report *Report
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		report, err = fetchReportForUpdate(tx, id)
		if err != nil {
			return err
		}

		if err := input.Header.apply(report); err != nil {
			return err
		}
		report.ReportStatus = ReportStatus(input.Header.ReportStatus)
		if err := tx.Save(report).Error; err != nil {
			return err
		}

		if err := tx.Where("report_id = ?", id).Delete(&ReportItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ReportId = id
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return assembleDetailedReport(report, items), nil
}

// DeleteReport cascades: items first, then the header, in one transaction.
// No item may outlive its report.
func DeleteReport(ctx context.Context, id int) error {
	ctx, span := tracer.Start(ctx, "models.DeleteReport",
		trace.WithAttributes(attribute.Int("report.id", id)))
	defer span.End()

	release := lockReport(ctx, id)
	defer release()

	db := config.GetDB()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		report, err := fetchReportForUpdate(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", id).Delete(&ReportItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(report).Error
	})
}

type ReportFilters struct {
	ClientId     int
	ConsultantId int
	FromDate     string
	ToDate       string
}

// ListReports returns one page of report headers ordered by report date
// descending (id ascending on ties) plus the total page count. Date filters
// are inclusive bounds on report_date.
func ListReports(ctx context.Context, filters ReportFilters, p Pagination) ([]ReportJSON, int, int, error) {
	db := config.GetDB()
	p = p.Normalize()

	query := db.WithContext(ctx).Model(&Report{})
	if filters.ClientId > 0 {
		query = query.Where("client_id = ?", filters.ClientId)
	}
	if filters.ConsultantId > 0 {
		query = query.Where("consulant_id = ?", filters.ConsultantId)
	}
	if filters.FromDate != "" {
		fromDate, err := utils.ParseDate(filters.FromDate)
		if err != nil {
			return nil, 0, 0, err
		}
		query = query.Where("report_date >= ?", fromDate)
	}
	if filters.ToDate != "" {
		toDate, err := utils.ParseDate(filters.ToDate)
		if err != nil {
			return nil, 0, 0, err
		}
		query = query.Where("report_date <= ?", toDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	var reports []Report
	err := query.Order("report_date DESC, id ASC").Scopes(Paginate(p)).Find(&reports).Error
	if err != nil {
		return nil, 0, 0, err
	}
	if len(reports) == 0 {
		// beyond the last page and an empty result set are both not-found,
		// matching every other list endpoint
		return nil, 0, 0, utils.ErrorRecordNotFound
	}

	formatted := make([]ReportJSON, 0, len(reports))
	for i := range reports {
		formatted = append(formatted, reports[i].Format())
	}
	return formatted, p.Page, TotalPages(total, p.PageSize), nil
}
