package models_test

import (
	"testing"

	"bitbucket.org/lcconsulting/consulting_backend/models"
)

func TestIsValidItemType(t *testing.T) {
	valid := []string{"requested_task", "work_undertaken", "follow_up_task", "customer_task", "issue_identified"}
	for _, v := range valid {
		if !models.IsValidItemType(v) {
			t.Errorf("IsValidItemType(%q) = false, want true", v)
		}
	}

	invalid := []string{"", "requested_tasks", "Requested_Task", "issue", "task", "unknown"}
	for _, v := range invalid {
		if models.IsValidItemType(v) {
			t.Errorf("IsValidItemType(%q) = true, want false", v)
		}
	}
}

func TestIsValidReportStatus(t *testing.T) {
	valid := []string{"new", "in-progress", "complete", "reviewed", "issued"}
	for _, v := range valid {
		if !models.IsValidReportStatus(v) {
			t.Errorf("IsValidReportStatus(%q) = false, want true", v)
		}
	}

	invalid := []string{"", "New", "in progress", "done", "draft"}
	for _, v := range invalid {
		if models.IsValidReportStatus(v) {
			t.Errorf("IsValidReportStatus(%q) = true, want false", v)
		}
	}
}

func TestIsValidIssueStatus(t *testing.T) {
	valid := []string{"open", "on-hold", "resolved", "blocked"}
	for _, v := range valid {
		if !models.IsValidIssueStatus(v) {
			t.Errorf("IsValidIssueStatus(%q) = false, want true", v)
		}
	}

	invalid := []string{"", "Open", "closed", "onhold"}
	for _, v := range invalid {
		if models.IsValidIssueStatus(v) {
			t.Errorf("IsValidIssueStatus(%q) = true, want false", v)
		}
	}
}

func TestIsValidContactType(t *testing.T) {
	for _, v := range []string{"consultant", "clientmanager", "other"} {
		if !models.IsValidContactType(v) {
			t.Errorf("IsValidContactType(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "client-manager", "admin"} {
		if models.IsValidContactType(v) {
			t.Errorf("IsValidContactType(%q) = true, want false", v)
		}
	}
}

func TestDefaultPositionTitle(t *testing.T) {
	cases := map[models.ContactType]string{
		models.ContactTypeConsultant:    "Business Consultant",
		models.ContactTypeClientManager: "Client Manager",
		models.ContactTypeOther:         "Other",
	}
	for contactType, want := range cases {
		if got := models.DefaultPositionTitle(contactType); got != want {
			t.Errorf("DefaultPositionTitle(%q) = %q, want %q", contactType, got, want)
		}
	}
}

func TestReportItemCategoriesOrder(t *testing.T) {
	want := []string{"requested_tasks", "work_undertaken", "follow_up_tasks", "customer_tasks", "issues_identified"}
	if len(models.ReportItemCategories) != len(want) {
		t.Fatalf("got %d categories, want %d", len(models.ReportItemCategories), len(want))
	}
	for i, category := range models.ReportItemCategories {
		if category.Name != want[i] {
			t.Errorf("category[%d] = %q, want %q", i, category.Name, want[i])
		}
		if !models.IsValidItemType(string(category.ItemType)) {
			t.Errorf("category %q maps to invalid item type %q", category.Name, category.ItemType)
		}
	}
}
