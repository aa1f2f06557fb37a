package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/RaikyD/b2-orders-service/internal/domain"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", FormatDate(nil))
	assert.Equal(t, "", FormatDate(&time.Time{}))
	assert.Equal(t, "", FormatDate(domain.ParseDate("not a date")))

	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024/03/05", FormatDate(&d))

	// calendar date stays as stored, even for late-evening values in another zone
	late := time.Date(2024, 12, 31, 23, 59, 0, 0, time.FixedZone("JST", 9*3600))
	assert.Equal(t, "2024/12/31", FormatDate(&late))
}

func TestJoinParts(t *testing.T) {
	assert.Equal(t, "大阪府大阪市1-2-3", JoinParts([]string{"大阪府", "大阪市", "1-2-3"}, ""))
	assert.Equal(t, "", JoinParts([]string{"", "", "  "}, " "))
	assert.Equal(t, "", JoinParts(nil, " "))
	assert.Equal(t, "山田 花子", JoinParts([]string{"山田", "花子"}, " "))
	assert.Equal(t, "山田", JoinParts([]string{" 山田 ", ""}, " "))
	assert.Equal(t, "東京都港区", JoinParts([]string{"東京都", "", "港区"}, ""))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "5300001", digitsOnly("530-0001"))
	assert.Equal(t, "5300001", digitsOnly("〒５３０－０００１"))
	assert.Equal(t, "", digitsOnly(""))
}
