package instrumentation

// Requested event lengths are unbounded user input up to a week. Metrics carry
// a bucket label instead of the raw minute count.

// Duration bucket label values.
const (
	BucketQuarterHour = "le_15m"
	BucketHour        = "le_1h"
	BucketHalfDay     = "le_12h"
	BucketDay         = "le_1d"
	BucketWeek        = "le_1w"
	BucketInvalid     = "invalid"
)

// DurationBucket maps an event length in minutes onto a low-cardinality label.
//
// Example:
//
//	DurationBucket(30)    // "le_1h"
//	DurationBucket(1440)  // "le_1d"
//	DurationBucket(0)     // "invalid"
func DurationBucket(minutes int64) string {
	switch {
	case minutes <= 0:
		return BucketInvalid
	case minutes <= 15:
		return BucketQuarterHour
	case minutes <= 60:
		return BucketHour
	case minutes <= 12*60:
		return BucketHalfDay
	case minutes <= 24*60:
		return BucketDay
	case minutes <= 7*24*60:
		return BucketWeek
	default:
		return BucketInvalid
	}
}
