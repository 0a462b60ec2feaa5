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

package num

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Uint is a 256-bit unsigned integer, used for all monetary amounts.
// Arithmetic methods set the receiver from their operands and return it,
// so expressions compose as num.UintZero().Mul(a, b).
type Uint struct {
	u uint256.Int
}

// NewUint creates a new Uint from a uint64.
func NewUint(val uint64) *Uint {
	return &Uint{*uint256.NewInt(val)}
}

// UintZero returns a new Uint set to zero.
func UintZero() *Uint {
	return NewUint(0)
}

func Min(a, b *Uint) *Uint {
	if a.LT(b) {
		return a.Clone()
	}
	return b.Clone()
}

func (u *Uint) Add(x, y *Uint) *Uint {
	u.u.Add(&x.u, &y.u)
	return u
}

// Sub computes x - y, clamping silently on underflow is not wanted here, the
// uint256 semantics wrap, so callers must validate x >= y first.
func (u *Uint) Sub(x, y *Uint) *Uint {
	u.u.Sub(&x.u, &y.u)
	return u
}

func (u *Uint) Mul(x, y *Uint) *Uint {
	u.u.Mul(&x.u, &y.u)
	return u
}

func (u *Uint) Div(x, y *Uint) *Uint {
	u.u.Div(&x.u, &y.u)
	return u
}

// AddSum adds all the parameters to u.
func (u *Uint) AddSum(vals ...*Uint) *Uint {
	for _, v := range vals {
		u.u.Add(&u.u, &v.u)
	}
	return u
}

func (u *Uint) Clone() *Uint {
	if u == nil {
		return nil
	}
	return &Uint{u.u}
}

func (u *Uint) Set(x *Uint) *Uint {
	u.u.Set(&x.u)
	return u
}

func (u *Uint) EQ(oth *Uint) bool {
	return u.u.Eq(&oth.u)
}

func (u *Uint) NEQ(oth *Uint) bool {
	return !u.u.Eq(&oth.u)
}

func (u *Uint) GT(oth *Uint) bool {
	return u.u.Gt(&oth.u)
}

func (u *Uint) GTE(oth *Uint) bool {
	return !u.u.Lt(&oth.u)
}

func (u *Uint) LT(oth *Uint) bool {
	return u.u.Lt(&oth.u)
}

func (u *Uint) LTE(oth *Uint) bool {
	return !u.u.Gt(&oth.u)
}

func (u *Uint) IsZero() bool {
	return u.u.IsZero()
}

// Uint64 returns the low 64 bits.
func (u *Uint) Uint64() uint64 {
	return u.u.Uint64()
}

func (u *Uint) BigInt() *big.Int {
	return u.u.ToBig()
}

func (u *Uint) String() string {
	return u.u.ToBig().String()
}

func (u *Uint) ToDecimal() Decimal {
	return DecimalFromUint(u)
}
