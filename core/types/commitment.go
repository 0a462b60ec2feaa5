// Copyright (C) 2023 Wattson Exchange Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package types

import (
	"time"

	"code.wattson.exchange/watt/libs/num"
)

// BucketKey segments prices and order books by market zone and delivery
// type.
type BucketKey struct {
	Zone         string
	DeliveryType string
}

func (k BucketKey) String() string {
	return k.Zone + "/" + k.DeliveryType
}

// CommitmentAttributes describe what a commitment actually delivers.
type CommitmentAttributes struct {
	Zone          string
	DeliveryType  string
	DeliveryHours string
	DeliveryDay   string
	FuelType      string
}

func (a CommitmentAttributes) Bucket() BucketKey {
	return BucketKey{Zone: a.Zone, DeliveryType: a.DeliveryType}
}

// Commitment is a time-boxed tranche of tokenized energy-delivery
// obligation. Records are created on mint and never deleted.
//
// Unit conservation holds at all times:
//
//	TotalMinted == TotalSupply + TotalRedeemed + TotalDestroyed + issuer balance
type Commitment struct {
	ID                uint64
	Issuer            string
	EmbeddedValue     *num.Uint
	ValidFrom         time.Time
	ValidTo           time.Time
	TotalMinted       uint64
	TotalSupply       uint64
	TotalRedeemed     uint64
	TotalDestroyed    uint64
	ExternalSupplyRef string
	Expired           bool
	Attributes        CommitmentAttributes
}

func (c *Commitment) Bucket() BucketKey {
	return c.Attributes.Bucket()
}

func (c *Commitment) Clone() *Commitment {
	cpy := *c
	cpy.EmbeddedValue = c.EmbeddedValue.Clone()
	return &cpy
}

// DefaultState tracks an issuer's settlement standing on one commitment.
// It drives mint eligibility: an issuer with any defaulted or
// pending-settlement commitment is blocked from minting new ones.
type DefaultState struct {
	PendingSettlement bool
	Defaulted         bool
	RetryAttempts     uint32
}

// TokenMetrics is the per-commitment volume report.
type TokenMetrics struct {
	CommitmentID uint64
	SoldVolume   uint64
	SoldValue    *num.Uint
	Price        *num.Uint
}

// ExpiryHistogramBounds are the time-to-expiry bucket boundaries, in days
// from now, used by the issuer metrics report.
var ExpiryHistogramBounds = []int{30, 60, 90, 120, 150, 180, 365, 730, 1095}

// IssuerMetrics aggregates volumes across all of an issuer's commitments.
type IssuerMetrics struct {
	Issuer          string
	MintedVolume    uint64
	SoldVolume      uint64
	DestroyedVolume uint64
	ActiveVolume    uint64
	ExpiredVolume   uint64
	// ExpiryHistogram buckets active balances by time to expiry. Slot i
	// holds volume expiring within ExpiryHistogramBounds[i] days, the last
	// slot holds everything beyond the final boundary.
	ExpiryHistogram []uint64
	Score           int64
}
