package models

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PaymentMethod - Ödeme yöntemi sözlüğü. Açılışta varsayılanlar seed edilir.
type PaymentMethod struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Name      string `gorm:"size:50;not null"`
	CreatedAt time.Time
}

const (
	MethodNameCash        = "Nakit"
	MethodNameCard        = "Kredi Kartı"
	MethodNamePOS         = "POS"
	MethodNameOpenAccount = "Açık Hesap"
	MethodNameSplit       = "Parçalı"
)

// SettlementBucket - Parasal hareketin tahsilat kanalı. Serbest metin yöntem
// adları rapor katmanına girmeden burada kapalı kümeye indirgenir.
type SettlementBucket string

const (
	BucketCash        SettlementBucket = "cash"
	BucketCard        SettlementBucket = "card"
	BucketOpenAccount SettlementBucket = "open_account"
)

// ASCII lower "KREDİ KARTI"yı bozar (İ -> i̇), o yüzden Türkçe case folding.
var turkishLower = cases.Lower(language.Turkish)

// ResolveBucket - Yöntem adını kovaya çevirir. Tanınmayan adlar nakit sayılır.
func ResolveBucket(name string) SettlementBucket {
	switch strings.TrimSpace(turkishLower.String(name)) {
	case "nakit":
		return BucketCash
	case "pos", "kredi kartı":
		return BucketCard
	case "açık hesap":
		return BucketOpenAccount
	default:
		return BucketCash
	}
}

// IsSplitMethod - "Parçalı" satışlar kovalara ödemeleri üzerinden dağıtılır.
func IsSplitMethod(name string) bool {
	return strings.TrimSpace(turkishLower.String(name)) == "parçalı"
}
