// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zdd

// Equal reports whether low and high denote the same family of sets. Two
// Node values compare equal if they point to the same edge, which, by
// canonicity, holds exactly when they represent the same family.
func (z *ZDD) Equal(low, high Node) bool {
	if low == high {
		return true
	}
	if low == nil || high == nil {
		return false
	}
	return *low == *high
}
