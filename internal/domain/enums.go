package domain

import "strings"

// AdvertStatus — статус объявления.
type AdvertStatus string

const (
	AdvertOpen      AdvertStatus = "OPEN"
	AdvertClosed    AdvertStatus = "CLOSED"
	AdvertCancelled AdvertStatus = "CANCELLED"
	AdvertAssigned  AdvertStatus = "ASSIGNED"
	AdvertReviewed  AdvertStatus = "REVIEWED"
)

// Valid — допустимое ли значение статуса.
func (s AdvertStatus) Valid() bool {
	switch s {
	case AdvertOpen, AdvertClosed, AdvertCancelled, AdvertAssigned, AdvertReviewed:
		return true
	}
	return false
}

// Advertiser — кто разместил объявление.
type Advertiser string

const (
	AdvertiserEmployee Advertiser = "EMPLOYEE"
	AdvertiserCustomer Advertiser = "CUSTOMER"
)

// Valid — допустимое ли значение.
func (a Advertiser) Valid() bool {
	return a == AdvertiserEmployee || a == AdvertiserCustomer
}

// ParseAdvertiser — разбор строки без учёта регистра.
func ParseAdvertiser(s string) (Advertiser, error) {
	a := Advertiser(strings.ToUpper(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", InvalidArgument("advertiser", s)
	}
	return a, nil
}

// OfferStatus — статус предложения.
type OfferStatus string

const (
	OfferOpen     OfferStatus = "OPEN"
	OfferClosed   OfferStatus = "CLOSED"
	OfferAccepted OfferStatus = "ACCEPTED"
	OfferRejected OfferStatus = "REJECTED"
)

func (s OfferStatus) Valid() bool {
	switch s {
	case OfferOpen, OfferClosed, OfferAccepted, OfferRejected:
		return true
	}
	return false
}
