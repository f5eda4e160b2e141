package models

type ReportStatus string

const (
	ReportStatusNew        ReportStatus = "new"
	ReportStatusInProgress ReportStatus = "in-progress"
	ReportStatusComplete   ReportStatus = "complete"
	ReportStatusReviewed   ReportStatus = "reviewed"
	ReportStatusIssued     ReportStatus = "issued"
)

func IsValidReportStatus(value string) bool {
	switch ReportStatus(value) {
	case ReportStatusNew, ReportStatusInProgress, ReportStatusComplete, ReportStatusReviewed, ReportStatusIssued:
		return true
	}
	return false
}

type ReportItemType string

const (
	ItemTypeRequestedTask   ReportItemType = "requested_task"
	ItemTypeWorkUndertaken  ReportItemType = "work_undertaken"
	ItemTypeFollowUpTask    ReportItemType = "follow_up_task"
	ItemTypeCustomerTask    ReportItemType = "customer_task"
	ItemTypeIssueIdentified ReportItemType = "issue_identified"
)

func IsValidItemType(value string) bool {
	switch ReportItemType(value) {
	case ItemTypeRequestedTask, ItemTypeWorkUndertaken, ItemTypeFollowUpTask, ItemTypeCustomerTask, ItemTypeIssueIdentified:
		return true
	}
	return false
}

type IssueStatus string

const (
	IssueStatusOpen     IssueStatus = "open"
	IssueStatusOnHold   IssueStatus = "on-hold"
	IssueStatusResolved IssueStatus = "resolved"
	IssueStatusBlocked  IssueStatus = "blocked"
)

func IsValidIssueStatus(value string) bool {
	switch IssueStatus(value) {
	case IssueStatusOpen, IssueStatusOnHold, IssueStatusResolved, IssueStatusBlocked:
		return true
	}
	return false
}

type ContactType string

const (
	ContactTypeConsultant    ContactType = "consultant"
	ContactTypeClientManager ContactType = "clientmanager"
	ContactTypeOther         ContactType = "other"
)

func IsValidContactType(value string) bool {
	switch ContactType(value) {
	case ContactTypeConsultant, ContactTypeClientManager, ContactTypeOther:
		return true
	}
	return false
}

// DefaultPositionTitle supplies the position title when a contact is created
// without one.
func DefaultPositionTitle(contactType ContactType) string {
	switch contactType {
	case ContactTypeConsultant:
		return "Business Consultant"
	case ContactTypeClientManager:
		return "Client Manager"
	default:
		return "Other"
	}
}

// ReportItemCategory is one of the five buckets a report payload groups its
// items under. The bucket determines the stored item_type.
type ReportItemCategory struct {
	Name     string
	ItemType ReportItemType
}

// ReportItemCategories fixes the order items are numbered in on create and
// full replace, and the order detailed reads partition buckets in.
var ReportItemCategories = []ReportItemCategory{
	{Name: "requested_tasks", ItemType: ItemTypeRequestedTask},
	{Name: "work_undertaken", ItemType: ItemTypeWorkUndertaken},
	{Name: "follow_up_tasks", ItemType: ItemTypeFollowUpTask},
	{Name: "customer_tasks", ItemType: ItemTypeCustomerTask},
	{Name: "issues_identified", ItemType: ItemTypeIssueIdentified},
}
