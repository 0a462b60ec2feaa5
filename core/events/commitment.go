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

	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"
)

// Minted - a new commitment was issued and collateralized.
type Minted struct {
	Base
	commitment types.Commitment
	collateral *num.Uint
}

func NewMintedEvent(ctx context.Context, c *types.Commitment, collateral *num.Uint) *Minted {
	return &Minted{
		Base:       newBase(ctx, MintedEvent),
		commitment: *c.Clone(),
		collateral: collateral.Clone(),
	}
}

func (m Minted) Commitment() types.Commitment {
	return m.commitment
}

func (m Minted) Collateral() *num.Uint {
	return m.collateral.Clone()
}

// Destroyed - an issuer burned part of its own balance.
type Destroyed struct {
	Base
	commitmentID uint64
	issuer       string
	amount       uint64
}

func NewDestroyedEvent(ctx context.Context, id uint64, issuer string, amount uint64) *Destroyed {
	return &Destroyed{
		Base:         newBase(ctx, DestroyedEvent),
		commitmentID: id,
		issuer:       issuer,
		amount:       amount,
	}
}

func (d Destroyed) CommitmentID() uint64 { return d.commitmentID }
func (d Destroyed) Issuer() string       { return d.issuer }
func (d Destroyed) Amount() uint64       { return d.amount }

// Redeemed - a holder claimed physical delivery from the issuer.
type Redeemed struct {
	Base
	commitmentID uint64
	holder       string
	amount       uint64
}

func NewRedeemedEvent(ctx context.Context, id uint64, holder string, amount uint64) *Redeemed {
	return &Redeemed{
		Base:         newBase(ctx, RedeemedEvent),
		commitmentID: id,
		holder:       holder,
		amount:       amount,
	}
}

func (r Redeemed) CommitmentID() uint64 { return r.commitmentID }
func (r Redeemed) Holder() string       { return r.holder }
func (r Redeemed) Amount() uint64       { return r.amount }
