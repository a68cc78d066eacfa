package match_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/match"
)

func TestClass_Buckets(t *testing.T) {
	kw := "중구"

	assert.Equal(t, match.ClassExact, match.Class("중구", kw))
	assert.Equal(t, match.ClassPrefix, match.Class("중구청", kw))
	assert.Equal(t, match.ClassContains, match.Class("서울중구청", kw))
	assert.Equal(t, match.ClassSuffix, match.Class("인천중구", kw))
	assert.Equal(t, match.ClassOther, match.Class("종로구", kw))
}

func TestClass_OrdersExactPrefixContainsSuffix(t *testing.T) {
	kw := "중구"
	names := []string{"인천중구", "서울중구청", "중구청", "중구"}

	sort.Slice(names, func(i, j int) bool {
		return match.Class(names[i], kw) < match.Class(names[j], kw)
	})

	assert.Equal(t, []string{"중구", "중구청", "서울중구청", "인천중구"}, names)
}

func TestNewKey_FallsThroughFields(t *testing.T) {
	kw := "서울"

	// Same name class; the country field breaks the tie.
	a := match.NewKey(kw, "남산타워", "서울", "서울", "용산구")
	b := match.NewKey(kw, "경복궁", "대한민국 서울", "서울", "종로구")

	assert.Equal(t, match.ClassOther, a[0])
	assert.Equal(t, a[0], b[0])
	assert.True(t, a.Less(b), "exact country should outrank suffix country")
	assert.False(t, b.Less(a))
}

func TestKey_EqualKeysAreNotLess(t *testing.T) {
	kw := "역"
	a := match.NewKey(kw, "서울역", "한국")
	b := match.NewKey(kw, "부산역", "한국")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Less(b))
	assert.False(t, b.Less(a))
}
