package domain

import "testing"

func TestUploadReportCounts(t *testing.T) {
	r := UploadReport{
		Results: []DomainResult{
			{Domain: "alpha", Status: StatusUploaded},
			{Domain: "beta", Status: StatusSkipped},
			{Domain: "gamma", Status: StatusUploaded},
		},
	}
	if r.Uploaded() != 2 {
		t.Fatalf("expected 2 uploaded, got %d", r.Uploaded())
	}
	if r.Skipped() != 1 {
		t.Fatalf("expected 1 skipped, got %d", r.Skipped())
	}
	if (UploadReport{}).Uploaded() != 0 {
		t.Fatalf("empty report should count zero")
	}
}
