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

package events

import (
	"context"

	"code.wattson.exchange/watt/libs/num"
)

// ExpirationRequested - a commitment entered its expiry window and was
// flagged expired by the upkeep pair.
type ExpirationRequested struct {
	Base
	commitmentID uint64
	issuer       string
}

func NewExpirationRequestedEvent(ctx context.Context, id uint64, issuer string) *ExpirationRequested {
	return &ExpirationRequested{
		Base:         newBase(ctx, ExpirationRequestedEvent),
		commitmentID: id,
		issuer:       issuer,
	}
}

func (e ExpirationRequested) CommitmentID() uint64 { return e.commitmentID }
func (e ExpirationRequested) Issuer() string       { return e.issuer }

// Settled - one holder was paid out during a settlement run.
type Settled struct {
	Base
	commitmentID uint64
	holder       string
	amount       *num.Uint
}

func NewSettledEvent(ctx context.Context, id uint64, holder string, amount *num.Uint) *Settled {
	return &Settled{
		Base:         newBase(ctx, SettledEvent),
		commitmentID: id,
		holder:       holder,
		amount:       amount.Clone(),
	}
}

func (s Settled) CommitmentID() uint64 { return s.commitmentID }
func (s Settled) Holder() string       { return s.holder }
func (s Settled) Amount() *num.Uint    { return s.amount.Clone() }

// SettlementFailed - the push transfer for one holder failed. Per-item,
// non-fatal to the batch.
type SettlementFailed struct {
	Base
	commitmentID uint64
	holder       string
	amount       *num.Uint
}

func NewSettlementFailedEvent(ctx context.Context, id uint64, holder string, amount *num.Uint) *SettlementFailed {
	return &SettlementFailed{
		Base:         newBase(ctx, SettlementFailedEvent),
		commitmentID: id,
		holder:       holder,
		amount:       amount.Clone(),
	}
}

func (s SettlementFailed) CommitmentID() uint64 { return s.commitmentID }
func (s SettlementFailed) Holder() string       { return s.holder }
func (s SettlementFailed) Amount() *num.Uint    { return s.amount.Clone() }

// AllDebtsSettled - a settlement run paid every holder in full.
type AllDebtsSettled struct {
	Base
	commitmentID uint64
	issuer       string
}

func NewAllDebtsSettledEvent(ctx context.Context, id uint64, issuer string) *AllDebtsSettled {
	return &AllDebtsSettled{
		Base:         newBase(ctx, AllDebtsSettledEvent),
		commitmentID: id,
		issuer:       issuer,
	}
}

func (a AllDebtsSettled) CommitmentID() uint64 { return a.commitmentID }
func (a AllDebtsSettled) Issuer() string       { return a.issuer }

// IssuerDefaulted - the retry budget ran out, the issuer is permanently
// in default for this commitment.
type IssuerDefaulted struct {
	Base
	commitmentID uint64
	issuer       string
}

func NewIssuerDefaultedEvent(ctx context.Context, id uint64, issuer string) *IssuerDefaulted {
	return &IssuerDefaulted{
		Base:         newBase(ctx, IssuerDefaultedEvent),
		commitmentID: id,
		issuer:       issuer,
	}
}

func (i IssuerDefaulted) CommitmentID() uint64 { return i.commitmentID }
func (i IssuerDefaulted) Issuer() string       { return i.issuer }
