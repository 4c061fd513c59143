package unfilled

import (
	"testing"
	"time"

	"github.com/hudsonrx/claimsight/internal/model"
)

var today = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time { return today.AddDate(0, 0, -n) }

func TestClassifyBucketTaxonomy(t *testing.T) {
	cases := []struct {
		priority, message, want string
	}{
		{"New Fill", "", BucketActionable},
		{"Pending 340B Review", "", BucketActionable},
		{"PA Under Review", "", BucketWaiting},
		{"Bridge", "", BucketWaiting},
		{"PA Denied", "", BucketLost},
		{"High Copay", "", BucketLost},
		{"Transfer", "", BucketTransfer},
		{"Approved - Transfer", "", BucketTransfer},
		{"Unknown", "", BucketOther},
		{"Some New Code", "", BucketOther},
		// Priority membership is case-sensitive literal matching.
		{"new fill", "", BucketOther},
	}
	for _, c := range cases {
		if got := ClassifyBucket(c.priority, c.message); got != c.want {
			t.Errorf("ClassifyBucket(%q, %q) = %q, want %q", c.priority, c.message, got, c.want)
		}
	}
}

func TestMessageRuleOutranksPriority(t *testing.T) {
	got := ClassifyBucket("New Fill", "Reject: M/I Pharmacy Number - Invalid")
	if got != BucketTransfer {
		t.Fatalf("message rule must win over actionable priority, got %q", got)
	}
}

func TestBuildSelectsOpenWindow(t *testing.T) {
	claims := []model.Claim{
		{RxNumber: "IN", Date: daysAgo(5), TotalPricePaid: 0, WACPrice: 100, RxPriority: "New Fill"},
		{RxNumber: "PAID", Date: daysAgo(5), TotalPricePaid: 50, RxPriority: "New Fill"},
		{RxNumber: "OLD", Date: daysAgo(45), TotalPricePaid: 0, WACPrice: 100, RxPriority: "New Fill"},
	}
	r := Build(claims, today)
	if r.TotalUnfilled != 1 || r.Rows[0].RxNumber != "IN" {
		t.Fatalf("expected only the open in-window claim, got %+v", r.Rows)
	}
	if r.Rows[0].DaysOpen != 5 {
		t.Errorf("DaysOpen = %d", r.Rows[0].DaysOpen)
	}
}

func TestBuildMissingPriorityBecomesUnknown(t *testing.T) {
	claims := []model.Claim{
		{Date: daysAgo(2), TotalPricePaid: 0, WACPrice: 10},
	}
	r := Build(claims, today)
	if r.Rows[0].RxPriority != "Unknown" {
		t.Errorf("RxPriority = %q", r.Rows[0].RxPriority)
	}
	if r.Rows[0].Bucket != BucketOther {
		t.Errorf("Bucket = %q", r.Rows[0].Bucket)
	}
}

func TestBuildEveryRowGetsExactlyOneBucket(t *testing.T) {
	priorities := []string{"New Fill", "PA Under Review", "PA Denied", "Transfer", "", "Nonsense"}
	var claims []model.Claim
	for i, p := range priorities {
		claims = append(claims, model.Claim{
			RxNumber: p, Date: daysAgo(i), TotalPricePaid: 0, WACPrice: 5, RxPriority: p,
		})
	}
	r := Build(claims, today)
	if len(r.Rows) != len(priorities) {
		t.Fatalf("rows = %d", len(r.Rows))
	}
	valid := map[string]bool{
		BucketActionable: true, BucketWaiting: true, BucketLost: true,
		BucketTransfer: true, BucketOther: true,
	}
	for _, row := range r.Rows {
		if !valid[row.Bucket] {
			t.Errorf("row %q has invalid bucket %q", row.RxNumber, row.Bucket)
		}
	}
}

func TestBuildSortsByDaysOpenDescending(t *testing.T) {
	claims := []model.Claim{
		{RxNumber: "A", Date: daysAgo(1), TotalPricePaid: 0, WACPrice: 1},
		{RxNumber: "B", Date: daysAgo(20), TotalPricePaid: 0, WACPrice: 1},
		{RxNumber: "C", Date: daysAgo(10), TotalPricePaid: 0, WACPrice: 1},
	}
	r := Build(claims, today)
	want := []string{"B", "C", "A"}
	for i, rx := range want {
		if r.Rows[i].RxNumber != rx {
			t.Fatalf("order = %v", r.Rows)
		}
	}
}

func TestReportMetricsAndSummaries(t *testing.T) {
	claims := []model.Claim{
		{Date: daysAgo(3), TotalPricePaid: 0, WACPrice: 100, RxPriority: "New Fill",
			PatientName: "Doe, Jane", PrescriberName: "Smith, John"},
		{Date: daysAgo(4), TotalPricePaid: 0, WACPrice: 200, RxPriority: "LVM",
			PatientName: "Doe, Jane", PrescriberName: "Jones, Mary"},
		{Date: daysAgo(5), TotalPricePaid: 0, WACPrice: 50, RxPriority: "PA Denied",
			PatientName: "Poe, Edgar", PrescriberName: "Smith, John"},
		{Date: daysAgo(6), TotalPricePaid: 0, WACPrice: 75, RxPriority: "New Fill",
			ClaimMessage: "REJECT: M/I PHARMACY NUMBER"},
	}
	r := Build(claims, today)

	if r.ActionableCount != 2 || r.ActionableWAC != 300 {
		t.Errorf("actionable = %d/$%v", r.ActionableCount, r.ActionableWAC)
	}
	if r.UniquePatients != 2 || r.UniquePrescribers != 2 {
		t.Errorf("unique patients=%d prescribers=%d", r.UniquePatients, r.UniquePrescribers)
	}
	if r.TransferMessageCount != 1 || r.TransferMessageWAC != 75 {
		t.Errorf("transfer message rollup = %d/$%v", r.TransferMessageCount, r.TransferMessageWAC)
	}

	buckets := r.ByBucket()
	if len(buckets) != 3 {
		t.Fatalf("buckets = %+v", buckets)
	}
	// Fixed display order: Actionable, Transfer, Lost.
	if buckets[0].Bucket != BucketActionable || buckets[0].Scripts != 2 || buckets[0].WAC != 300 {
		t.Errorf("bucket[0] = %+v", buckets[0])
	}
	if buckets[1].Bucket != BucketTransfer || buckets[1].WAC != 75 {
		t.Errorf("bucket[1] = %+v", buckets[1])
	}
	if buckets[2].Bucket != BucketLost {
		t.Errorf("bucket[2] = %+v", buckets[2])
	}

	byPri := r.ByPriority()
	if byPri[0].Bucket != BucketActionable {
		t.Errorf("byPriority[0] = %+v", byPri[0])
	}

	groups := r.Actionable()
	if len(groups) != 2 {
		t.Fatalf("actionable groups = %+v", groups)
	}
	for _, g := range groups {
		if g.Guidance == "" {
			t.Errorf("group %q missing guidance", g.Priority)
		}
	}
}

func TestGuidanceFallback(t *testing.T) {
	if g := Guidance("New Fill"); g == "" || g == Guidance("Never Heard Of It") {
		t.Error("known priority should have specific guidance")
	}
	if g := Guidance("Never Heard Of It"); g != "Follow up with pharmacy or prescriber's office." {
		t.Errorf("fallback guidance = %q", g)
	}
}
