package instrumentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationBucket(t *testing.T) {
	tests := []struct {
		minutes int64
		want    string
	}{
		{-5, BucketInvalid},
		{0, BucketInvalid},
		{1, BucketQuarterHour},
		{15, BucketQuarterHour},
		{16, BucketHour},
		{60, BucketHour},
		{61, BucketHalfDay},
		{720, BucketHalfDay},
		{1440, BucketDay},
		{1441, BucketWeek},
		{10080, BucketWeek},
		{10081, BucketInvalid},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DurationBucket(tt.minutes), "minutes=%d", tt.minutes)
	}
}
