package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBucket(t *testing.T) {
	cases := []struct {
		name string
		want SettlementBucket
	}{
		{"Nakit", BucketCash},
		{"nakit", BucketCash},
		{"NAKİT", BucketCash},
		{"POS", BucketCard},
		{"pos", BucketCard},
		{"Kredi Kartı", BucketCard},
		// ASCII lower büyük İ'yi bozar; Türkçe folding doğru çözmeli.
		{"KREDİ KARTI", BucketCard},
		{"Açık Hesap", BucketOpenAccount},
		{"AÇIK HESAP", BucketOpenAccount},
		{" Nakit ", BucketCash},
		{"Havale", BucketCash}, // tanınmayan -> nakit
		{"", BucketCash},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ResolveBucket(c.name), "yöntem: %q", c.name)
	}
}

func TestIsSplitMethod(t *testing.T) {
	assert.True(t, IsSplitMethod("Parçalı"))
	assert.True(t, IsSplitMethod("PARÇALI"))
	assert.False(t, IsSplitMethod("Nakit"))
}
