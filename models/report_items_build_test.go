package models_test

import (
	"strings"
	"testing"

	"bitbucket.org/lcconsulting/consulting_backend/models"
)

func itemInput(description string) models.NewReportItem {
	return models.NewReportItem{ItemDescription: &description}
}

func TestBuildReportItemsNumbersAcrossCategories(t *testing.T) {
	input := models.NewReportItems{
		RequestedTasks:   []models.NewReportItem{itemInput("req 1"), itemInput("req 2")},
		WorkUndertaken:   []models.NewReportItem{itemInput("work 1")},
		CustomerTasks:    []models.NewReportItem{itemInput("cust 1")},
		IssuesIdentified: []models.NewReportItem{itemInput("issue 1")},
	}

	items, err := models.BuildReportItems(input)
	if err != nil {
		t.Fatalf("BuildReportItems: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("got %d items, want 5", len(items))
	}

	// one monotonically increasing sequence across all categories, in the
	// fixed category order, preserving within-category input order
	wantTypes := []models.ReportItemType{
		models.ItemTypeRequestedTask,
		models.ItemTypeRequestedTask,
		models.ItemTypeWorkUndertaken,
		models.ItemTypeCustomerTask,
		models.ItemTypeIssueIdentified,
	}
	wantDescriptions := []string{"req 1", "req 2", "work 1", "cust 1", "issue 1"}
	for i, item := range items {
		if item.ReportItemNbr != i+1 {
			t.Errorf("item[%d].ReportItemNbr = %d, want %d", i, item.ReportItemNbr, i+1)
		}
		if item.ItemType != wantTypes[i] {
			t.Errorf("item[%d].ItemType = %q, want %q", i, item.ItemType, wantTypes[i])
		}
		if item.ItemDescription != wantDescriptions[i] {
			t.Errorf("item[%d].ItemDescription = %q, want %q", i, item.ItemDescription, wantDescriptions[i])
		}
		if item.ItemComplete == nil || *item.ItemComplete {
			t.Errorf("item[%d].ItemComplete should default to false", i)
		}
	}
}

func TestBuildReportItemsEmptyInput(t *testing.T) {
	items, err := models.BuildReportItems(models.NewReportItems{})
	if err != nil {
		t.Fatalf("BuildReportItems: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("got %d items, want 0", len(items))
	}
}

func TestBuildReportItemsRejectsMissingDescription(t *testing.T) {
	input := models.NewReportItems{
		WorkUndertaken: []models.NewReportItem{{}},
	}

	_, err := models.BuildReportItems(input)
	if err == nil {
		t.Fatal("expected error for missing item_description")
	}
	if !strings.Contains(err.Error(), "item_description") {
		t.Errorf("error should name item_description, got %q", err.Error())
	}
}

func TestBuildReportItemsRejectsInvalidIssueStatus(t *testing.T) {
	description := "broken build"
	status := "escalated"
	input := models.NewReportItems{
		IssuesIdentified: []models.NewReportItem{{
			ItemDescription: &description,
			IssueStatus:     &status,
		}},
	}

	_, err := models.BuildReportItems(input)
	if err == nil {
		t.Fatal("expected error for invalid issue_status")
	}
}

func TestBuildReportItemsAcceptsValidIssueStatus(t *testing.T) {
	description := "intermittent failure"
	status := "on-hold"
	input := models.NewReportItems{
		IssuesIdentified: []models.NewReportItem{{
			ItemDescription: &description,
			IssueStatus:     &status,
		}},
	}

	items, err := models.BuildReportItems(input)
	if err != nil {
		t.Fatalf("BuildReportItems: %v", err)
	}
	if items[0].IssueStatus == nil || *items[0].IssueStatus != models.IssueStatusOnHold {
		t.Errorf("issue status not carried through: %+v", items[0].IssueStatus)
	}
}

func TestCategorizeReportItemsAlwaysFillsBuckets(t *testing.T) {
	out := models.CategorizeReportItems(nil)

	// buckets must be empty lists, not nil, so they serialize as [] and not null
	for name, bucket := range map[string][]models.ReportItem{
		"requested_tasks":   out.RequestedTasks,
		"work_undertaken":   out.WorkUndertaken,
		"follow_up_tasks":   out.FollowUpTasks,
		"customer_tasks":    out.CustomerTasks,
		"issues_identified": out.IssuesIdentified,
	} {
		if bucket == nil {
			t.Errorf("bucket %q is nil, want empty slice", name)
		}
		if len(bucket) != 0 {
			t.Errorf("bucket %q has %d items, want 0", name, len(bucket))
		}
	}
}

func TestCategorizeReportItemsPartitionsByType(t *testing.T) {
	items := []models.ReportItem{
		{ReportItemNbr: 1, ItemType: models.ItemTypeRequestedTask},
		{ReportItemNbr: 2, ItemType: models.ItemTypeIssueIdentified},
		{ReportItemNbr: 3, ItemType: models.ItemTypeRequestedTask},
	}

	out := models.CategorizeReportItems(items)
	if len(out.RequestedTasks) != 2 {
		t.Errorf("requested_tasks has %d items, want 2", len(out.RequestedTasks))
	}
	if len(out.IssuesIdentified) != 1 {
		t.Errorf("issues_identified has %d items, want 1", len(out.IssuesIdentified))
	}
	if out.RequestedTasks[0].ReportItemNbr != 1 || out.RequestedTasks[1].ReportItemNbr != 3 {
		t.Errorf("requested_tasks lost item-number order: %+v", out.RequestedTasks)
	}
}
