package ledger

import "time"

// AgingBucket is a categorical label for how overdue an unpaid invoice is,
// relative to an "as of" date.
type AgingBucket string

const (
	BucketNotDue   AgingBucket = "0"     // due today or in the future
	BucketDays30   AgingBucket = "0–30"  // 1-30 days overdue
	BucketDays60   AgingBucket = "31–60" // 31-60 days overdue
	BucketDays90   AgingBucket = "61–90" // 61-90 days overdue
	BucketDays90Up AgingBucket = "90+"   // more than 90 days overdue
	BucketPaid     AgingBucket = "Paid"  // outstanding balance is zero
)

// String returns the string representation of the bucket
func (b AgingBucket) String() string {
	return string(b)
}

// ComputeAgingBucket classifies a due date against an "as of" date.
// The result reflects days overdue assuming nothing is paid; callers must
// substitute BucketPaid for invoices whose outstanding balance is zero.
// Pure and deterministic: it never consults the wall clock.
func ComputeAgingBucket(dueDate, asOf time.Time) AgingBucket {
	delta := daysBetween(dueDate, asOf)
	switch {
	case delta <= 0:
		return BucketNotDue
	case delta <= 30:
		return BucketDays30
	case delta <= 60:
		return BucketDays60
	case delta <= 90:
		return BucketDays90
	default:
		return BucketDays90Up
	}
}

// IsOverdue reports whether the due date has passed as of the given date.
// Due today is not overdue.
func IsOverdue(dueDate, asOf time.Time) bool {
	return daysBetween(dueDate, asOf) > 0
}

// daysBetween returns whole calendar days from one date to the other,
// negative when "to" precedes "from". Time-of-day and zone are discarded
// so a payment due at 23:59 and one due at 00:01 age identically.
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
